package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/jrsteele09/go-summary-client/devserver"
	"github.com/jrsteele09/go-summary-client/devserver/summaryrepo"
	"github.com/jrsteele09/go-summary-client/internal/config"
	apperrors "github.com/jrsteele09/go-summary-client/internal/errors"
	"github.com/jrsteele09/go-summary-client/routes"
	"github.com/jrsteele09/go-summary-client/token"
	refreshrepofake "github.com/jrsteele09/go-summary-client/token/refresh/repofake"
	fakeuserrepo "github.com/jrsteele09/go-summary-client/users/repofake"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// setup starts a dev gateway and points the CLI at it with a private token file.
func setup(t *testing.T) string {
	t.Helper()
	v := viper.New()
	v.Set("ENV", "TEST")
	v.Set("JWT_SECRET", "cli-test-secret")

	srv, err := devserver.New(config.FromViper(v), devserver.Repos{
		Users:         fakeuserrepo.NewFakeUserRepo(),
		Summaries:     summaryrepo.NewInMemorySummaryRepo(),
		RefreshTokens: refreshrepofake.NewFakeRefreshTokenRepo(),
	})
	require.NoError(t, err)
	gateway := httptest.NewServer(srv)
	t.Cleanup(gateway.Close)

	dir := t.TempDir()
	t.Setenv("API_BASE_URL", gateway.URL)
	t.Setenv("TOKEN_STORE", "file")
	t.Setenv("TOKEN_FILE", filepath.Join(dir, "tokens.json"))
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd, closeApp := newRootCmd()
	defer closeApp()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, stdin, args...)
	require.NoError(t, err, out)
	return out
}

func registerAndLogin(t *testing.T) {
	t.Helper()
	mustRun(t, "", "register", "--name", "Ada Lovelace", "--email", "ada@example.com", "--password", "secret", "--confirm", "secret")
	mustRun(t, "", "login", "-e", "ada@example.com", "-p", "secret")
}

func TestVersion(t *testing.T) {
	out := mustRun(t, "", "version")
	require.Contains(t, out, "summarizer dev")
}

func TestGuardedCommandsRequireLogin(t *testing.T) {
	setup(t)

	for _, args := range [][]string{
		{"settings"},
		{"summaries", "list"},
		{"summaries", "show", "0c6a1d4e-6a56-4a4e-9b8c-0d4b1c1e2f3a"},
		{"summarize", "text", "Hello there."},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := run(t, "", args...)
			require.ErrorIs(t, err, errNotAuthorized)
			require.Equal(t, routes.NotAuthorizedMessage, userMessage(err))
		})
	}
}

func TestTokenStoreClosedAfterFailure(t *testing.T) {
	setup(t)
	var closed int
	defer func() { openTokenRepo = newTokenRepo }()
	openTokenRepo = func(ctx context.Context, cfg config.StorageConfig) (token.Repo, func(), error) {
		repo, closeFn, err := newTokenRepo(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { closed++; closeFn() }, nil
	}

	_, err := run(t, "", "settings")
	require.ErrorIs(t, err, errNotAuthorized)
	require.Equal(t, 1, closed)

	mustRun(t, "", "logout")
	require.Equal(t, 2, closed)
}

func TestRegisterAndLogin(t *testing.T) {
	setup(t)

	t.Run("register", func(t *testing.T) {
		out := mustRun(t, "", "register", "-n", "Ada Lovelace", "-e", "ada@example.com", "-p", "secret", "--confirm", "secret")
		require.Contains(t, out, "User created successfully. You can now log in.")
	})

	t.Run("register twice", func(t *testing.T) {
		_, err := run(t, "", "register", "-n", "Ada Lovelace", "-e", "ada@example.com", "-p", "secret", "--confirm", "secret")
		require.Error(t, err)
		require.Equal(t, "User Already Exists", userMessage(err))
	})

	t.Run("passwords must match", func(t *testing.T) {
		_, err := run(t, "", "register", "-n", "Grace Hopper", "-e", "grace@example.com", "-p", "one", "--confirm", "two")
		require.Error(t, err)
		require.Equal(t, "Passwords must match", userMessage(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := run(t, "", "login", "-e", "ada@example.com", "-p", "nope")
		require.Error(t, err)
		require.Equal(t, "Invalid credentials", userMessage(err))
	})

	t.Run("prompted login", func(t *testing.T) {
		out := mustRun(t, "ada@example.com\nsecret\n", "login")
		require.Contains(t, out, "Email: ")
		require.Contains(t, out, "Password: ")
		require.Contains(t, out, "Welcome back, Ada! You are logged in as ada@example.com.")
	})

	t.Run("session survives between runs", func(t *testing.T) {
		out := mustRun(t, "", "settings")
		require.Contains(t, out, "Name:    Ada Lovelace")
		require.Contains(t, out, "Email:   ada@example.com")
		require.Contains(t, out, "User ID: 1")
		require.Contains(t, out, "Joined:  ")
	})

	t.Run("logout", func(t *testing.T) {
		require.Contains(t, mustRun(t, "", "logout"), "Logged out.")
		_, err := run(t, "", "settings")
		require.ErrorIs(t, err, errNotAuthorized)
	})

	t.Run("logout is idempotent", func(t *testing.T) {
		require.Contains(t, mustRun(t, "", "logout"), "Logged out.")
	})
}

func TestSummaries(t *testing.T) {
	dir := setup(t)
	registerAndLogin(t)

	t.Run("empty list", func(t *testing.T) {
		require.Contains(t, mustRun(t, "", "summaries", "list"), "No summaries yet.")
	})

	t.Run("summarize text arguments", func(t *testing.T) {
		out := mustRun(t, "", "summarize", "text", "--len", "1", "Go is fun.", "Channels are neat.")
		require.Contains(t, out, "Go is fun.")
		require.NotContains(t, out, "Channels are neat.")
	})

	t.Run("summarize text from stdin", func(t *testing.T) {
		out := mustRun(t, "Stdin works. It really does.\n", "summarize", "text")
		require.Contains(t, out, "Stdin works. It really does.")
	})

	t.Run("summarize blank text", func(t *testing.T) {
		_, err := run(t, "   ", "summarize", "text")
		require.Error(t, err)
	})

	t.Run("summarize file", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("Notes from a file. Second line."), 0o600))
		out := mustRun(t, "", "summarize", "file", path)
		require.Contains(t, out, "Notes from a file.")
	})

	t.Run("summarize unsupported file", func(t *testing.T) {
		_, err := run(t, "", "summarize", "file", filepath.Join(dir, "image.png"))
		require.Error(t, err)
	})

	var ids []string
	t.Run("list", func(t *testing.T) {
		out := mustRun(t, "", "summaries", "list")
		require.Contains(t, out, "TITLE")
		ids = uuidPattern.FindAllString(out, -1)
		require.Len(t, ids, 3)
	})
	require.Len(t, ids, 3)

	t.Run("show", func(t *testing.T) {
		out := mustRun(t, "", "summaries", "show", ids[0])
		require.NotEmpty(t, strings.TrimSpace(out))
	})

	t.Run("show invalid id", func(t *testing.T) {
		_, err := run(t, "", "summaries", "show", "not-a-uuid")
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		require.Equal(t, `get summary: "not-a-uuid" is not a summary id`, userMessage(err))
	})

	t.Run("export", func(t *testing.T) {
		out := filepath.Join(dir, "summary.pdf")
		require.Contains(t, mustRun(t, "", "summaries", "export", ids[0], "--out", out), "Saved "+out)
		b, err := os.ReadFile(out)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(b, []byte("%PDF")))
	})

	t.Run("delete and relist", func(t *testing.T) {
		out := mustRun(t, "", "summaries", "delete", ids[0], "--list")
		require.Contains(t, out, "Summary deleted successfully")
		require.NotContains(t, out, ids[0])
		require.Contains(t, out, ids[1])
	})

	t.Run("delete twice", func(t *testing.T) {
		_, err := run(t, "", "summaries", "delete", ids[0])
		require.Error(t, err)
		require.Contains(t, userMessage(err), "Summary not found")
	})
}
