// Package cli implements the fixtured command line.
//
//	fixtured serve                     # HTTP server on APP_PORT
//	fixtured list [--tags]             # fixture names, or tags
//	fixtured show NAME [-f yaml]       # build and print one fixture
//	fixtured show TAG --tag            # build every fixture under a tag
//
// Global flags: --env-file (default .env) and --log-level, which overrides
// LOG_LEVEL when given.
package cli
