package handlers

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/rxddit/rxddit/meta"
	"github.com/rxddit/rxddit/models"
	"github.com/rxddit/rxddit/reddit"
)

// PostHandler serves every link shape that identifies a post: subreddit and
// profile permalinks, short links, and untyped comment links. Crawlers get
// the compiled metadata document, browsers get a redirect to reddit.
type PostHandler struct {
	logger       *slog.Logger
	client       *reddit.Client
	compiler     *reddit.Compiler
	customDomain string
}

func NewPostHandler(logger *slog.Logger, client *reddit.Client, compiler *reddit.Compiler, customDomain string) *PostHandler {
	return &PostHandler{
		logger:       logger,
		client:       client,
		compiler:     compiler,
		customDomain: customDomain,
	}
}

func (h *PostHandler) SubredditPost(w http.ResponseWriter, r *http.Request) Result {
	name, id, slug, ref := r.PathValue("name"), r.PathValue("id"), r.PathValue("slug"), r.PathValue("ref")
	return h.handle(r, func(ctx context.Context) (*models.Post, error) {
		return h.client.SubredditPost(ctx, name, id, slug, ref)
	})
}

func (h *PostHandler) ProfilePost(w http.ResponseWriter, r *http.Request) Result {
	name, id, slug, ref := r.PathValue("name"), r.PathValue("id"), r.PathValue("slug"), r.PathValue("ref")
	return h.handle(r, func(ctx context.Context) (*models.Post, error) {
		return h.client.ProfilePost(ctx, name, id, slug, ref)
	})
}

func (h *PostHandler) UntypedPost(w http.ResponseWriter, r *http.Request) Result {
	id, slug, ref := r.PathValue("id"), r.PathValue("slug"), r.PathValue("ref")
	return h.handle(r, func(ctx context.Context) (*models.Post, error) {
		return h.client.UntypedPost(ctx, id, slug, ref)
	})
}

func (h *PostHandler) ShortLinkPost(w http.ResponseWriter, r *http.Request) Result {
	id := r.PathValue("id")
	return h.handle(r, func(ctx context.Context) (*models.Post, error) {
		return h.client.ShortLinkPost(ctx, id)
	})
}

func (h *PostHandler) handle(r *http.Request, resolve func(ctx context.Context) (*models.Post, error)) Result {
	originalURL := h.originalRedditURL(r)

	if !IsBot(r) {
		return Redirect(originalURL, meta.RedirectPage(originalURL))
	}

	post, err := resolve(r.Context())
	if err != nil {
		if errors.Is(err, reddit.ErrPostNotFound) {
			return NotFound("Post not found")
		}
		return InternalError(err, "resolve post")
	}

	return Html(h.compiler.Compile(r.Context(), post))
}

// originalRedditURL maps the request back onto reddit, keeping any subdomain
// prefix (old.<us> stays old.reddit.com).
func (h *PostHandler) originalRedditURL(r *http.Request) string {
	host := r.Host
	if hostOnly, _, err := net.SplitHostPort(host); err == nil {
		host = hostOnly
	}

	if strings.HasSuffix(host, h.customDomain) {
		host = strings.Replace(host, h.customDomain, "reddit.com", 1)
	} else {
		host = "reddit.com"
	}

	return "https://" + host + reddit.CleanSpoiler(r.URL.RequestURI())
}

// IsBot reports whether the request comes from a link-preview crawler.
// Everything that self-identifies as a bot gets metadata, everyone else a
// redirect.
func IsBot(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("User-Agent")), "bot")
}
