package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/rxddit/rxddit/config"
	"github.com/rxddit/rxddit/meta"
	"github.com/rxddit/rxddit/reddit"
)

// ShareHandler resolves reddit's opaque share links (/r/<sub>/s/<id>) by
// asking reddit where they redirect, then sends the client to the same path
// on our own host so the post handler picks it up.
type ShareHandler struct {
	logger    *slog.Logger
	client    *http.Client
	baseURL   string
	userAgent string
}

func NewShareHandler(logger *slog.Logger, cfg config.AppConfig) *ShareHandler {
	return &ShareHandler{
		logger: logger,
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL:   cfg.RedditBaseURL,
		userAgent: cfg.UserAgent,
	}
}

func (h *ShareHandler) ResolveShare(w http.ResponseWriter, r *http.Request) Result {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.baseURL+reddit.CleanSpoiler(r.URL.Path), nil)
	if err != nil {
		return InternalError(err, "share request")
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := h.client.Do(req)
	if err != nil {
		return InternalError(err, "resolve share link")
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if location == "" {
		return NotFound("Post not found")
	}

	redirect, err := url.Parse(location)
	if err != nil {
		return NotFound("Post not found")
	}
	redirect.Host = r.Host
	redirect.Scheme = "https"

	return Redirect(redirect.String(), meta.RedirectPage(redirect.String()))
}
