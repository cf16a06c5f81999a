package embeds

import (
	"context"
	"net/http"

	"github.com/rxddit/rxddit/meta"
	"github.com/rxddit/rxddit/models"
)

// ImgurResolver scrapes the linked imgur page for a direct video source,
// falling back to the post's own preview image for stills.
type ImgurResolver struct {
	client    *http.Client
	userAgent string
}

func (i *ImgurResolver) Resolve(ctx context.Context, post *models.Post, link string, head *meta.Head) error {
	doc, err := fetchDocument(ctx, i.client, link, i.userAgent)
	if err != nil {
		return err
	}

	videoSource := metaProperty(doc, "og:video")
	if videoSource == "" {
		videoSource = metaName(doc, "twitter:player:stream")
	}
	thumbnail := metaName(doc, "twitter:image")

	width, height := 0, 0
	if post.Resolution != nil {
		width, height = post.Resolution.Width, post.Resolution.Height
	}

	switch {
	case videoSource != "":
		if thumbnail != "" {
			head.AddImage(thumbnail, width, height, meta.SizeNone)
		}
		head.AddVideo(videoSource, width, height, "video/mp4")
	case post.PreviewImageURL != "":
		head.AddImage(post.PreviewImageURL, width, height, meta.SizeLarge)
	case thumbnail != "":
		head.AddImage(thumbnail, width, height, meta.SizeLarge)
	}

	return nil
}
