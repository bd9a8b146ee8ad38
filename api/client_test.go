package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-summary-client/api"
	apperrors "github.com/jrsteele09/go-summary-client/internal/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const summaryID = "7f1c2a55-4d0e-4b8a-9a36-3c1e5f0d2b11"

// recorder remembers the last request a test gateway saw.
type recorder struct {
	lock   sync.Mutex
	method string
	path   string
	auth   string
	body   map[string]any
	form   map[string]string
	calls  int
}

func (r *recorder) snapshot() recorder {
	r.lock.Lock()
	defer r.lock.Unlock()
	return recorder{method: r.method, path: r.path, auth: r.auth, body: r.body, form: r.form, calls: r.calls}
}

func testGateway(t *testing.T, status int, response any) (*api.Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.lock.Lock()
		rec.calls++
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				rec.form = map[string]string{"summary_len": r.FormValue("summary_len")}
				if f, hdr, err := r.FormFile("file"); err == nil {
					content, _ := io.ReadAll(f)
					rec.form["filename"] = hdr.Filename
					rec.form["content"] = string(content)
					_ = f.Close()
				}
			}
		} else if r.Body != nil {
			var body map[string]any
			if json.NewDecoder(r.Body).Decode(&body) == nil {
				rec.body = body
			}
		}
		rec.lock.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL+"/", 5*time.Second)
	require.NoError(t, err)
	return client, rec
}

type tokenSourceFunc func() (*oauth2.Token, error)

func (f tokenSourceFunc) Token() (*oauth2.Token, error) { return f() }

func staticToken(access string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: access})
}

func TestNewClient(t *testing.T) {
	_, err := api.NewClient("not a url", time.Second)
	require.Error(t, err)

	c, err := api.NewClient("http://localhost:8000/api/", time.Second)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000/api/", c.BaseURL())
}

func TestClient_IssueToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusOK, map[string]string{"access": "a1", "refresh": "r1"})

		pair, err := client.IssueToken(ctx, api.Credentials{Email: "user@example.com", Password: "secret"})
		require.NoError(t, err)
		require.Equal(t, api.TokenPair{Access: "a1", Refresh: "r1"}, pair)

		seen := rec.snapshot()
		require.Equal(t, http.MethodPost, seen.method)
		require.Equal(t, "/auth/token/", seen.path)
		require.Equal(t, "user@example.com", seen.body["email"])
		require.Equal(t, "secret", seen.body["password"])
		require.Empty(t, seen.auth)
	})

	t.Run("rejection carries the server message", func(t *testing.T) {
		client, _ := testGateway(t, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})

		_, err := client.IssueToken(ctx, api.Credentials{Email: "user@example.com", Password: "nope"})
		require.EqualError(t, err, "Invalid credentials")
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("detail is used when error is absent", func(t *testing.T) {
		client, _ := testGateway(t, http.StatusUnauthorized, map[string]string{"detail": "No active account found"})

		_, err := client.IssueToken(ctx, api.Credentials{Email: "user@example.com", Password: "nope"})
		require.EqualError(t, err, "No active account found")
	})

	t.Run("invalid email is rejected locally", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusOK, nil)

		_, err := client.IssueToken(ctx, api.Credentials{Email: "not-an-email", Password: "secret"})
		require.EqualError(t, err, "Please provide a valid email address")
		require.Zero(t, rec.snapshot().calls)

		_, err = client.IssueToken(ctx, api.Credentials{Email: "user@example.com"})
		require.EqualError(t, err, "Password is required")
	})

	t.Run("empty access token", func(t *testing.T) {
		client, _ := testGateway(t, http.StatusOK, map[string]string{"refresh": "r1"})

		_, err := client.IssueToken(ctx, api.Credentials{Email: "user@example.com", Password: "secret"})
		var authErr *apperrors.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestClient_Register(t *testing.T) {
	ctx := context.Background()
	req := api.RegisterRequest{
		FullName:             "Ada Lovelace",
		Email:                "ada@example.com",
		Password:             "secret",
		PasswordConfirmation: "secret",
	}

	t.Run("success", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusCreated, map[string]string{"message": "User created successfully"})

		msg, err := client.Register(ctx, req)
		require.NoError(t, err)
		require.Equal(t, "User created successfully", msg)

		seen := rec.snapshot()
		require.Equal(t, "/auth/register/", seen.path)
		require.Equal(t, "Ada Lovelace", seen.body["fullName"])
		require.NotContains(t, seen.body, "passwordConfirmation")
	})

	t.Run("passwords must match", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusCreated, nil)
		bad := req
		bad.PasswordConfirmation = "other"

		_, err := client.Register(ctx, bad)
		require.EqualError(t, err, "Passwords must match")
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		require.Zero(t, rec.snapshot().calls)
	})

	t.Run("existing user", func(t *testing.T) {
		client, _ := testGateway(t, http.StatusConflict, map[string]string{"error": "User Already Exists"})

		_, err := client.Register(ctx, req)
		require.EqualError(t, err, "User Already Exists")
		require.ErrorIs(t, err, apperrors.ErrUserExists)
	})
}

func TestClient_Summaries(t *testing.T) {
	ctx := context.Background()

	t.Run("list sends the bearer token", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusOK, map[string]any{
			"summaries": []map[string]any{
				{"id": summaryID, "summary_title": "Title", "summary_text": "Text", "text_source": "Source text", "summary_date": "2024-03-01T10:00:00.123456Z"},
				{"id": "b3", "summary_title": nil, "summary_text": "Doc", "text_source": "", "pdf_or_word_file": "File: report.pdf", "summary_date": "2024-03-02T10:00:00Z"},
			},
		})

		summaries, err := client.WithTokenSource(staticToken("abc")).ListSummaries(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		require.Equal(t, "Title", summaries[0].TitleOrDefault())
		require.Equal(t, "Source text", summaries[0].Source())
		require.Equal(t, 2024, summaries[0].Date.Year())
		require.Equal(t, "Untitled summary", summaries[1].TitleOrDefault())
		require.Equal(t, "File: report.pdf", summaries[1].Source())

		seen := rec.snapshot()
		require.Equal(t, http.MethodGet, seen.method)
		require.Equal(t, "/generate-summary/summaries/", seen.path)
		require.Equal(t, "Bearer abc", seen.auth)
	})

	t.Run("no token source", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusOK, nil)

		_, err := client.ListSummaries(ctx)
		require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
		require.Zero(t, rec.snapshot().calls)
	})

	t.Run("token source errors pass through", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusOK, nil)
		authed := client.WithTokenSource(tokenSourceFunc(func() (*oauth2.Token, error) {
			return nil, apperrors.ErrTokenExpired
		}))

		_, err := authed.ListSummaries(ctx)
		require.ErrorIs(t, err, apperrors.ErrTokenExpired)
		require.Zero(t, rec.snapshot().calls)
	})

	t.Run("get one", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusOK, map[string]any{
			"summaries": map[string]any{"id": summaryID, "summary_title": "Title", "summary_text": "Text"},
		})

		s, err := client.WithTokenSource(staticToken("abc")).GetSummary(ctx, summaryID)
		require.NoError(t, err)
		require.Equal(t, summaryID, s.ID)
		require.Equal(t, "Text", s.Body())
		require.Equal(t, "/generate-summary/summaries/"+summaryID+"/", rec.snapshot().path)
	})

	t.Run("missing summary", func(t *testing.T) {
		client, _ := testGateway(t, http.StatusNotFound, map[string]string{"message": "Summary not found"})

		_, err := client.WithTokenSource(staticToken("abc")).GetSummary(ctx, summaryID)
		var upErr *apperrors.UpstreamError
		require.ErrorAs(t, err, &upErr)
		require.Equal(t, http.StatusNotFound, upErr.Status)
		require.Equal(t, "Summary not found", upErr.Message)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
		require.EqualError(t, err, "get summary: Summary not found")
	})

	t.Run("malformed id", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusOK, nil)

		_, err := client.WithTokenSource(staticToken("abc")).GetSummary(ctx, "../etc")
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		_, err = client.WithTokenSource(staticToken("abc")).DeleteSummary(ctx, "42")
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		require.Zero(t, rec.snapshot().calls)
	})

	t.Run("server failure", func(t *testing.T) {
		client, _ := testGateway(t, http.StatusInternalServerError, map[string]string{})

		_, err := client.WithTokenSource(staticToken("abc")).ListSummaries(ctx)
		var upErr *apperrors.UpstreamError
		require.ErrorAs(t, err, &upErr)
		require.EqualError(t, err, "list summaries: "+apperrors.DefaultMessage)
		require.ErrorIs(t, err, apperrors.ErrInternal)
	})
}

func TestClient_Summarize(t *testing.T) {
	ctx := context.Background()
	generated := map[string]any{"summary": map[string]string{"title": "T", "summary": "S"}}

	t.Run("text with default length", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusCreated, generated)

		out, err := client.WithTokenSource(staticToken("abc")).SummarizeText(ctx, api.SummarizeTextRequest{Text: "Some text."})
		require.NoError(t, err)
		require.Equal(t, api.GeneratedSummary{Title: "T", Summary: "S"}, out)

		seen := rec.snapshot()
		require.Equal(t, "/generate-summary/text/", seen.path)
		require.Equal(t, "Some text.", seen.body["text_to_summarize"])
		require.EqualValues(t, api.DefaultSummaryLen, seen.body["summary_len"])
	})

	t.Run("text validation", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusCreated, generated)
		authed := client.WithTokenSource(staticToken("abc"))

		_, err := authed.SummarizeText(ctx, api.SummarizeTextRequest{Text: "   "})
		require.EqualError(t, err, "summarize text: Text to summarize is empty.")
		_, err = authed.SummarizeText(ctx, api.SummarizeTextRequest{Text: "x", SummaryLen: api.MaxSummaryLen + 1})
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		require.Zero(t, rec.snapshot().calls)
	})

	t.Run("document upload is multipart", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusCreated, generated)

		_, err := client.WithTokenSource(staticToken("abc")).SummarizeDocument(ctx, api.SummarizeDocumentRequest{
			FileName:   "/tmp/notes.txt",
			Content:    strings.NewReader("First. Second."),
			SummaryLen: 3,
		})
		require.NoError(t, err)

		seen := rec.snapshot()
		require.Equal(t, "/generate-summary/document/", seen.path)
		require.Equal(t, "Bearer abc", seen.auth)
		require.Equal(t, map[string]string{"summary_len": "3", "filename": "notes.txt", "content": "First. Second."}, seen.form)
	})

	t.Run("document validation", func(t *testing.T) {
		client, rec := testGateway(t, http.StatusCreated, generated)
		authed := client.WithTokenSource(staticToken("abc"))

		_, err := authed.SummarizeDocument(ctx, api.SummarizeDocumentRequest{FileName: "virus.exe", Content: strings.NewReader("x")})
		require.EqualError(t, err, "summarize document: Only PDF, Word and text files are supported")
		_, err = authed.SummarizeDocument(ctx, api.SummarizeDocumentRequest{FileName: "a.pdf"})
		require.EqualError(t, err, "summarize document: No file selected.")
		require.Zero(t, rec.snapshot().calls)
	})
}

func TestClient_OnInvalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("successful mutations signal subscribers", func(t *testing.T) {
		client, _ := testGateway(t, http.StatusOK, map[string]any{"message": "Summary deleted successfully", "summary": map[string]string{}})
		var got []api.Resource
		unsubscribe := client.OnInvalidate(func(r api.Resource) { got = append(got, r) })
		authed := client.WithTokenSource(staticToken("abc"))

		msg, err := authed.DeleteSummary(ctx, summaryID)
		require.NoError(t, err)
		require.Equal(t, "Summary deleted successfully", msg)
		_, err = authed.SummarizeText(ctx, api.SummarizeTextRequest{Text: "One."})
		require.NoError(t, err)
		require.Equal(t, []api.Resource{api.ResourceSummaries, api.ResourceSummaries}, got)

		unsubscribe()
		_, err = authed.DeleteSummary(ctx, summaryID)
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("reads and failures do not signal", func(t *testing.T) {
		client, _ := testGateway(t, http.StatusNotFound, map[string]string{"message": "Summary not found"})
		calls := 0
		client.OnInvalidate(func(api.Resource) { calls++ })
		authed := client.WithTokenSource(staticToken("abc"))

		_, err := authed.DeleteSummary(ctx, summaryID)
		require.Error(t, err)
		_, err = authed.ListSummaries(ctx)
		require.Error(t, err)
		require.Zero(t, calls)
	})
}
