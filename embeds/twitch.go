package embeds

import (
	"context"
	"net/url"
	"strings"

	"github.com/rxddit/rxddit/meta"
	"github.com/rxddit/rxddit/models"
)

// TwitchResolver builds a clips.twitch.tv embed URL for a clip link. It
// performs no network fetch; everything is derived from the link and the
// oembed metadata reddit already resolved.
type TwitchResolver struct {
	ancestors []string
}

func (t *TwitchResolver) Resolve(_ context.Context, post *models.Post, link string, head *meta.Head) error {
	u, err := url.Parse(link)
	if err != nil {
		return err
	}

	if slug := clipSlug(u); slug != "" {
		embed := url.URL{Scheme: "https", Host: "clips.twitch.tv", Path: "/embed"}
		query := url.Values{}
		query.Set("clip", slug)
		// Twitch's CSP only allows the frame when every embedding parent
		// domain is declared on the URL.
		for _, parent := range t.ancestors {
			query.Add("parent", parent)
		}
		embed.RawQuery = query.Encode()

		width, height := 1920, 1080
		if post.OEmbed != nil && post.OEmbed.Width > 0 && post.OEmbed.Height > 0 {
			width, height = post.OEmbed.Width, post.OEmbed.Height
		}
		head.AddVideo(embed.String(), width, height, "text/html")
	}

	switch {
	case post.OEmbed != nil && post.OEmbed.ThumbnailURL != "":
		head.AddImage(post.OEmbed.ThumbnailURL, post.OEmbed.ThumbnailWidth, post.OEmbed.ThumbnailHeight, meta.SizeNone)
	case post.PreviewImageURL != "":
		width, height := 0, 0
		if post.Resolution != nil {
			width, height = post.Resolution.Width, post.Resolution.Height
		}
		head.AddImage(post.PreviewImageURL, width, height, meta.SizeNone)
	}

	return nil
}

// clipSlug extracts the clip slug, which lives in a different path position
// depending on the host.
func clipSlug(u *url.URL) string {
	switch u.Hostname() {
	case "clips.twitch.tv":
		// https://clips.twitch.tv/<slug>
		return strings.TrimPrefix(u.Path, "/")
	case "www.twitch.tv":
		// https://www.twitch.tv/<user>/clip/<slug>
		parts := strings.Split(u.Path, "/")
		for i, part := range parts {
			if part == "clip" && i+1 < len(parts) {
				return parts[i+1]
			}
		}
		return strings.TrimPrefix(u.Path, "/")
	}
	return ""
}
