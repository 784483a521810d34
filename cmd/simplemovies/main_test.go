package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kbukum/simplemovies/bootstrap"
	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/session"
)

type fetcherFunc func(ctx context.Context, query map[string]string) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, query map[string]string) ([]byte, error) {
	return f(ctx, query)
}

var catalogue = fetcherFunc(func(_ context.Context, q map[string]string) ([]byte, error) {
	if !strings.Contains(strings.ToLower("Batman Begins"), strings.ToLower(q["s"])) {
		return []byte(`{"Search":[],"totalResults":"0","Response":"True"}`), nil
	}
	return []byte(`{"Search":[{"Title":"Batman Begins","Year":"2005","imdbID":"tt0372784","Type":"movie","Poster":"N/A"}],"totalResults":"1","Response":"True"}`), nil
})

// writeConfig creates a config with one user, alice, whose password is
// "correct horse", and file stores under dir.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	hash, err := session.HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	path := filepath.Join(dir, "config.yml")
	content := fmt.Sprintf(`name: simplemovies-cli-test
movies:
  api_key: test-key
favorites:
  driver: file
  path: %s
secrets:
  driver: file
  path: %s
session:
  secret: 0123456789abcdef0123456789abcdef
  users:
    - id: u1
      username: alice
      password_hash: %q
`, filepath.Join(dir, "favorites.json"), filepath.Join(dir, "secrets.json"), hash)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(bootstrap.WithLogger(logger.NewNop()), bootstrap.WithFetcher(catalogue))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfgPath, "--env-file", filepath.Join(filepath.Dir(cfgPath), "none.env")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCLIRequiresLogin(t *testing.T) {
	cfg := writeConfig(t)

	_, err := run(t, cfg, "", "search", "batman")
	assert.ErrorIs(t, err, errNotLoggedIn)

	_, err = run(t, cfg, "", "favorites", "list")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestCLILoginFlow(t *testing.T) {
	cfg := writeConfig(t)

	_, err := run(t, cfg, "wrong password\n", "login", "alice")
	require.Error(t, err)

	out, err := run(t, cfg, "correct horse\n", "login", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice")

	out, err = run(t, cfg, "", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "alice (u1)\n", out)

	out, err = run(t, cfg, "", "search", "batman")
	require.NoError(t, err)
	assert.Contains(t, out, "tt0372784")
	assert.NotContains(t, out, "★")

	out, err = run(t, cfg, "", "favorites", "add", "batman", "tt0372784")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Batman Begins (2005)")

	out, err = run(t, cfg, "", "search", "batman")
	require.NoError(t, err)
	assert.Contains(t, out, "★")

	out, err = run(t, cfg, "", "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Batman Begins")

	_, err = run(t, cfg, "", "favorites", "add", "batman", "tt9999999")
	assert.Error(t, err)

	out, err = run(t, cfg, "", "favorites", "remove", "tt0372784")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed tt0372784")

	out, err = run(t, cfg, "", "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites yet")

	_, err = run(t, cfg, "", "logout")
	require.NoError(t, err)
	_, err = run(t, cfg, "", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestCLISearchNoResults(t *testing.T) {
	cfg := writeConfig(t)
	_, err := run(t, cfg, "", "login", "alice", "--password", "correct horse")
	require.NoError(t, err)

	out, err := run(t, cfg, "", "search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, `No results for "zzz"`)
}

func TestHashPassword(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader("correct horse\n"))
	root.SetArgs([]string{"hash-password", "--cost", "4"})
	require.NoError(t, root.Execute())

	hash := strings.TrimSpace(out.String())
	assert.NoError(t, session.VerifyPassword("correct horse", hash))
}

func TestVersion(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--json"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `"version": "dev"`)
}
