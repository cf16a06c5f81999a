package embeds

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rxddit/rxddit/meta"
	"github.com/rxddit/rxddit/models"
)

// YouTubeResolver converts a youtube link into an embed player URL and a
// maxresdefault thumbnail. Clip links carry no video id, so those need a
// second fetch to scrape the player URL off the clip page.
type YouTubeResolver struct {
	client    *http.Client
	userAgent string
}

func (y *YouTubeResolver) Resolve(ctx context.Context, post *models.Post, link string, head *meta.Head) error {
	u, err := url.Parse(link)
	if err != nil {
		return err
	}

	var width, height int
	if post.OEmbed != nil {
		width, height = post.OEmbed.Width, post.OEmbed.Height
	}

	if strings.HasPrefix(u.Path, "/clip/") {
		doc, err := fetchDocument(ctx, y.client, link, y.userAgent)
		if err != nil {
			return err
		}

		if thumbnail := metaName(doc, "twitter:image"); thumbnail != "" {
			head.AddImage(thumbnail, width, height, meta.SizeNone)
		}
		if player := metaName(doc, "twitter:player"); player != "" {
			head.AddVideo(player, width, height, "text/html")
		}
		return nil
	}

	id := videoID(u)
	if id == "" {
		return nil
	}

	head.AddVideo("https://www.youtube.com/embed/"+id, width, height, "text/html")
	head.AddImage("https://img.youtube.com/vi/"+id+"/maxresdefault.jpg", width, height, meta.SizeNone)
	return nil
}

func videoID(u *url.URL) string {
	switch u.Hostname() {
	case "youtu.be":
		return strings.TrimPrefix(u.Path, "/")
	case "www.youtube.com", "youtube.com":
		return u.Query().Get("v")
	}
	return ""
}
