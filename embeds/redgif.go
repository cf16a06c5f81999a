package embeds

import (
	"context"
	"net/http"

	"github.com/rxddit/rxddit/meta"
	"github.com/rxddit/rxddit/models"
)

// RedgifResolver scrapes the redgifs page for its player and thumbnail.
type RedgifResolver struct {
	client    *http.Client
	userAgent string
}

func (r *RedgifResolver) Resolve(ctx context.Context, post *models.Post, link string, head *meta.Head) error {
	doc, err := fetchDocument(ctx, r.client, link, r.userAgent)
	if err != nil {
		return err
	}

	player := metaName(doc, "twitter:player")
	thumbnail := metaName(doc, "twitter:image")

	width, height := 0, 0
	if post.Resolution != nil {
		width, height = post.Resolution.Width, post.Resolution.Height
	}

	if thumbnail != "" {
		head.AddImage(thumbnail, width, height, meta.SizeNone)
	}
	if player != "" {
		head.AddVideo(player, width, height, "video/mp4")
	}

	return nil
}
