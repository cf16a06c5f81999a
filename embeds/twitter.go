package embeds

import (
	"context"
	"net/http"
	"regexp"

	"github.com/rxddit/rxddit/meta"
	"github.com/rxddit/rxddit/models"
)

var statusLink = regexp.MustCompile(`(?i)^https?://(?:www\.)?(?:twitter|x)\.com/(?:#!/)?([^/]+)/status(?:es)?/([^/]+)$`)

// TwitterResolver scrapes a tweet's Open Graph tags off a mirror site, since
// twitter itself serves nothing useful without executing scripts.
type TwitterResolver struct {
	client    *http.Client
	mirrorURL string
}

// Identifying ourselves as a preview bot makes the mirror return its OG
// tags instead of a redirect.
const twitterBotUserAgent = "Discordbot 2.0"

func (t *TwitterResolver) Resolve(ctx context.Context, post *models.Post, link string, head *meta.Head) error {
	match := statusLink.FindStringSubmatch(link)
	if match == nil {
		return nil
	}
	username, id := match[1], match[2]

	doc, err := fetchDocument(ctx, t.client, t.mirrorURL+"/"+username+"/status/"+id, twitterBotUserAgent)
	if err != nil {
		return err
	}

	description := metaProperty(doc, "og:description")
	image := metaProperty(doc, "og:image")
	video := metaProperty(doc, "og:video")
	title := metaProperty(doc, "og:title")

	if card := metaProperty(doc, "twitter:card"); card != "" {
		head.AddMeta("twitter:card", card)
	}

	richText := title + " on Twitter"
	if description != "" {
		richText = description + "\n- " + title + " on Twitter"
	}
	head.AddMeta("og:description", richText)
	head.AddMeta("twitter:description", richText)

	if image != "" {
		width := metaPropertyInt(doc, "og:image:width")
		height := metaPropertyInt(doc, "og:image:height")
		head.AddImage(image, width, height, meta.SizeNone)
	}

	if video != "" {
		mimeType := metaProperty(doc, "og:video:type")
		if mimeType == "" {
			mimeType = "video/mp4"
		}
		width := metaPropertyInt(doc, "og:video:width")
		height := metaPropertyInt(doc, "og:video:height")
		head.AddVideo(video, width, height, mimeType)
	}

	return nil
}
