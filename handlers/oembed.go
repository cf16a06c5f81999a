package handlers

import (
	"net/http"
	"strings"

	"github.com/rxddit/rxddit/reddit"
)

// OEmbedHandler decodes the self-describing oembed URLs the compiler puts on
// every document and serves them back as JSON.
type OEmbedHandler struct{}

func NewOEmbedHandler() *OEmbedHandler {
	return &OEmbedHandler{}
}

func (h *OEmbedHandler) GetOEmbed(w http.ResponseWriter, r *http.Request) Result {
	embed, err := reddit.DecodeOEmbed(r.URL.Query().Get("embed"))
	if err != nil {
		return NotFound("")
	}

	// The payload is attacker-controlled, so the author link is only echoed
	// back when it points at reddit. Anything else would turn the endpoint
	// into an open redirect for oembed consumers.
	if !strings.HasPrefix(embed.AuthorURL, "https://www.reddit.com/") {
		embed.AuthorURL = ""
	}

	return Json(embed)
}
