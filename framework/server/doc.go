// Package server exposes a fixture catalog over HTTP.
//
// # Endpoints
//
//	GET /healthz                     {"status":"ok"}
//	GET /metrics                     Prometheus exposition
//	GET /v1/fixtures                 {"data":["order","user"]}
//	GET /v1/fixtures/{name}          the built fixture
//	GET /v1/tags                     {"data":["checkout"]}
//	GET /v1/tags/{tag}               {"order":{...},"user":{...}}
//
// Fixture and tag endpoints render JSON by default; ?format=yaml or an
// Accept header naming YAML switches to YAML.
//
// # Errors
//
// Every error body has the same shape:
//
//	{"code":"NOT_FOUND","message":"unknown fixture user","requestId":"…"}
//
// Unknown fixtures, tags and routes are 404, a bad format is 400, a failed
// build is 422 and an exhausted rate limit is 429.
//
// # Middleware
//
// All routes get a request id (X-Request-Id, kept when the client sends a
// valid UUID), Prometheus request metrics and slog request logging. Only
// /v1 is rate limited.
package server
