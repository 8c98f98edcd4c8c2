package cli_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-fixture/framework/catalog"
	"github.com/km-arc/go-fixture/framework/cli"
)

type address struct {
	Street string `json:"street" yaml:"street"`
	Zip    int    `json:"zip" yaml:"zip"`
}

type sealed struct{ id int }

type testFixtures struct{ catalog.BaseProvider }

func (testFixtures) Register(c *catalog.Catalog) {
	catalog.Register[address](c, "address")
	catalog.Register[sealed](c, "sealed")
	c.Tag([]string{"address"}, "shipping")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	missing := filepath.Join(t.TempDir(), "none.env")

	var out bytes.Buffer
	cmd := cli.NewRootCommand(testFixtures{})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--env-file", missing, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "address\nsealed\ntime\nurl\n", out)
}

func TestList_Tags(t *testing.T) {
	out, err := run(t, "list", "--tags")
	require.NoError(t, err)
	assert.Equal(t, "shipping\n", out)
}

func TestShow_JSON(t *testing.T) {
	out, err := run(t, "show", "address")
	require.NoError(t, err)
	assert.JSONEq(t, `{"street":"dummy","zip":1}`, out)
}

func TestShow_YAML(t *testing.T) {
	out, err := run(t, "show", "address", "--format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "street: dummy\nzip: 1\n", out)
}

func TestShow_Tag(t *testing.T) {
	out, err := run(t, "show", "shipping", "--tag", "-f", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "address:\n  street: dummy\n  zip: 1\n", out)
}

func TestShow_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown fixture", []string{"show", "nope"}, "unknown fixture nope"},
		{"no constructor", []string{"show", "sealed"}, "NO_CONSTRUCTOR"},
		{"bad format", []string{"show", "address", "-f", "xml"}, "unsupported format"},
		{"missing name", []string{"show"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_CONFIG")
}
