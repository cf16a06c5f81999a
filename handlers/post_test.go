package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxddit/rxddit/config"
	"github.com/rxddit/rxddit/embeds"
	"github.com/rxddit/rxddit/reddit"
)

const postListing = `[{
	"kind": "Listing",
	"data": {"children": [{
		"kind": "t3",
		"data": {
			"subreddit": "golang",
			"title": "A fine post",
			"author": "gopher",
			"permalink": "/r/golang/comments/abc123/a_fine_post/",
			"domain": "self.golang",
			"selftext": "body text"
		}
	}]}
}]`

func newTestPostHandler(t *testing.T, upstream *httptest.Server) *PostHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.AppConfig{
		CustomDomain:    "rxddit.com",
		RedditBaseURL:   upstream.URL,
		RedditShortURL:  upstream.URL,
		UserAgent:       "test-agent",
		ThemeColor:      "#ff581a",
		ResolverTimeout: time.Second,
	}
	client := reddit.NewClient(logger, upstream.Client(), cfg)
	registry := embeds.NewRegistry(upstream.Client(), cfg.UserAgent, nil)
	compiler := reddit.NewCompiler(logger, client, registry, cfg)
	return NewPostHandler(logger, client, compiler, cfg.CustomDomain)
}

func subredditRequest(target, userAgent string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.Host = "rxddit.com"
	r.Header.Set("User-Agent", userAgent)
	r.SetPathValue("name", "golang")
	r.SetPathValue("id", "abc123")
	r.SetPathValue("slug", "a_fine_post")
	return r
}

func TestIsBot(t *testing.T) {
	cases := []struct {
		userAgent string
		want      bool
	}{
		{"Discordbot/2.0", true},
		{"TelegramBot (like TwitterBot)", true},
		{"Mozilla/5.0 (Windows NT 10.0) Firefox/116.0", false},
		{"", false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("User-Agent", tc.userAgent)
		assert.Equal(t, tc.want, IsBot(r), tc.userAgent)
	}
}

func TestPostHandler_BrowserRedirectsToReddit(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("browser requests must not reach reddit")
	}))
	defer upstream.Close()

	handler := newTestPostHandler(t, upstream)
	r := subredditRequest("/r/golang/comments/abc123/a_fine_post/", "Mozilla/5.0 Firefox/116.0")

	result := handler.SubredditPost(httptest.NewRecorder(), r)

	assert.Equal(t, http.StatusFound, result.Code)
	assert.Equal(t, "https://reddit.com/r/golang/comments/abc123/a_fine_post/", result.Location)
	assert.Contains(t, result.Body, "http-equiv")
}

func TestPostHandler_KeepsSubdomainPrefix(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer upstream.Close()

	handler := newTestPostHandler(t, upstream)
	r := subredditRequest("/r/golang/comments/abc123/a_fine_post/", "Mozilla/5.0")
	r.Host = "old.rxddit.com:8080"

	result := handler.SubredditPost(httptest.NewRecorder(), r)
	assert.Equal(t, "https://old.reddit.com/r/golang/comments/abc123/a_fine_post/", result.Location)
}

func TestPostHandler_ForeignHostMapsToReddit(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer upstream.Close()

	handler := newTestPostHandler(t, upstream)
	r := subredditRequest("/r/golang/comments/abc123/a_fine_post/", "Mozilla/5.0")
	r.Host = "localhost:8080"

	result := handler.SubredditPost(httptest.NewRecorder(), r)
	assert.Equal(t, "https://reddit.com/r/golang/comments/abc123/a_fine_post/", result.Location)
}

func TestPostHandler_StripsSpoilerFromRedirect(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer upstream.Close()

	handler := newTestPostHandler(t, upstream)
	r := subredditRequest("/r/golang/comments/abc123/a_fine_post/%7C%7C", "Mozilla/5.0")

	result := handler.SubredditPost(httptest.NewRecorder(), r)
	assert.Equal(t, "https://reddit.com/r/golang/comments/abc123/a_fine_post/", result.Location)
}

func TestPostHandler_BotGetsMetadata(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/golang/comments/abc123/a_fine_post.json", r.URL.Path)
		io.WriteString(w, postListing)
	}))
	defer upstream.Close()

	handler := newTestPostHandler(t, upstream)
	r := subredditRequest("/r/golang/comments/abc123/a_fine_post/", "Discordbot/2.0")

	result := handler.SubredditPost(httptest.NewRecorder(), r)

	require.NoError(t, result.Error)
	assert.Equal(t, http.StatusOK, result.Code)
	assert.Equal(t, "text/html; charset=UTF-8", result.ContentType)
	assert.Contains(t, result.Body, `content="A fine post"`)
	assert.Contains(t, result.Body, "u/gopher on r/golang")
	assert.Contains(t, result.Body, "body text")
}

func TestPostHandler_MissingPost(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	defer upstream.Close()

	handler := newTestPostHandler(t, upstream)
	r := subredditRequest("/r/golang/comments/abc123/a_fine_post/", "Discordbot/2.0")

	result := handler.SubredditPost(httptest.NewRecorder(), r)

	assert.Equal(t, http.StatusNotFound, result.Code)
	assert.Equal(t, "Post not found", result.Body)
}

func TestPostHandler_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	handler := newTestPostHandler(t, upstream)
	r := subredditRequest("/r/golang/comments/abc123/a_fine_post/", "Discordbot/2.0")

	result := handler.SubredditPost(httptest.NewRecorder(), r)

	assert.Equal(t, http.StatusInternalServerError, result.Code)
	assert.Error(t, result.Error)
}
