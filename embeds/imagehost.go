package embeds

import (
	"context"

	"github.com/rxddit/rxddit/meta"
	"github.com/rxddit/rxddit/models"
)

// ImageHostResolver handles plain image hosts. Reddit already resolved a
// preview for these, so there is nothing to fetch.
type ImageHostResolver struct{}

func (ImageHostResolver) Resolve(_ context.Context, post *models.Post, _ string, head *meta.Head) error {
	if post.PreviewImageURL == "" {
		return nil
	}

	width, height := 0, 0
	if post.Resolution != nil {
		width, height = post.Resolution.Width, post.Resolution.Height
	}
	head.AddImage(post.PreviewImageURL, width, height, meta.SizeLarge)
	return nil
}
