package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rxddit/rxddit/meta"
	"github.com/rxddit/rxddit/reddit"
)

// VideoHandler resolves /v/<permalink> to the current packaged video URL.
// Reddit signs those URLs with a short expiry, so embeds reference this
// endpoint instead and we re-resolve on every hit.
type VideoHandler struct {
	logger  *slog.Logger
	client  *reddit.Client
	timeout time.Duration
}

func NewVideoHandler(logger *slog.Logger, client *reddit.Client, timeout time.Duration) *VideoHandler {
	return &VideoHandler{logger: logger, client: client, timeout: timeout}
}

func (h *VideoHandler) GetVideo(w http.ResponseWriter, r *http.Request) Result {
	permalink := "/" + r.PathValue("path")

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	video := h.client.PackagedVideo(ctx, permalink)
	if video == nil {
		return NotFound("")
	}

	return Redirect(video.URL, meta.RedirectPage(video.URL))
}
