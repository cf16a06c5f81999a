package reddit

import (
	"regexp"
	"strings"

	"github.com/rxddit/rxddit/models"
)

var (
	zeroWidthSpace = regexp.MustCompile(`^&amp;#x200B;`)
	viewPollLink   = regexp.MustCompile(`(?i)^\[view poll\]\(https?://[^)]*\)`)
)

// Parse converts a raw listing entry into the canonical post model. It is a
// pure function: no I/O, no errors. Every derived field defaults to absence.
//
// A crosspost is resolved by normalizing its first parent and inheriting the
// media fields the local entry lacks; deeper crosspost chains are not
// followed.
func Parse(entry *models.RedditPostData) *models.Post {
	return parse(entry, true)
}

func parse(entry *models.RedditPostData, followCrosspost bool) *models.Post {
	post := &models.Post{
		Subreddit:        entry.Subreddit,
		Title:            entry.Title,
		Author:           entry.Author,
		Permalink:        entry.Permalink,
		Domain:           entry.Domain,
		PostHint:         entry.PostHint,
		URL:              entry.URL,
		IsRedditMedia:    entry.IsRedditMediaDomain,
		IsMediaOnly:      entry.MediaOnly,
		SecureMediaEmbed: entry.SecureMediaEmbed,
		PollData:         entry.PollData,
		VideoHasAudio:    true,
	}

	if entry.SecureMedia != nil && entry.SecureMedia.RedditVideo != nil {
		post.VideoURL = entry.SecureMedia.RedditVideo.FallbackURL
	}
	if entry.Media != nil && entry.Media.OEmbed != nil {
		post.OEmbed = entry.Media.OEmbed
	}

	var parent *models.Post
	if followCrosspost && len(entry.CrosspostParentList) > 0 {
		parent = parse(&entry.CrosspostParentList[0], false)
	}

	switch {
	case entry.Media != nil && entry.Media.RedditVideo != nil:
		video := entry.Media.RedditVideo
		post.Resolution = &models.Resolution{Width: video.Width, Height: video.Height}
		post.VideoURL = video.FallbackURL
		post.VideoHasAudio = video.HasAudio
		post.PostHint = "hosted:video"
	case parent != nil:
		post.Resolution = parent.Resolution
		post.VideoURL = parent.VideoURL
		post.VideoHasAudio = parent.VideoHasAudio
		post.PostHint = parent.PostHint
	case firstPreviewImage(entry) != nil:
		image := firstPreviewImage(entry)
		if image.Source != nil {
			post.Resolution = &models.Resolution{Width: image.Source.Width, Height: image.Source.Height}
		} else if len(image.Resolutions) > 0 {
			// Resolutions are ordered ascending, the last one is the largest.
			largest := image.Resolutions[len(image.Resolutions)-1]
			post.Resolution = &models.Resolution{Width: largest.Width, Height: largest.Height}
		}
	case entry.ThumbnailWidth > 0 && entry.ThumbnailHeight > 0:
		post.Resolution = &models.Resolution{Width: entry.ThumbnailWidth, Height: entry.ThumbnailHeight}
	}

	post.MediaMetadata = galleryImages(entry)
	if len(post.MediaMetadata) == 0 && parent != nil {
		post.MediaMetadata = parent.MediaMetadata
	}

	post.PreviewImageURL = previewImageURL(entry, parent)
	post.Description = cleanDescription(entry)

	return post
}

func firstPreviewImage(entry *models.RedditPostData) *models.PreviewImage {
	if entry.Preview == nil || len(entry.Preview.Images) == 0 {
		return nil
	}
	return &entry.Preview.Images[0]
}

// galleryImages flattens the gallery into display order. gallery_data.items
// is the canonical ordering; media_metadata alone has no defined order.
// Entries without a source sub-object are dropped, not zero-filled.
func galleryImages(entry *models.RedditPostData) []models.Image {
	if len(entry.MediaMetadata) == 0 {
		return nil
	}

	var images []models.Image
	if entry.GalleryData != nil && len(entry.GalleryData.Items) > 0 {
		for _, item := range entry.GalleryData.Items {
			value, ok := entry.MediaMetadata[item.MediaID]
			if !ok || value.S == nil {
				continue
			}
			images = append(images, models.Image{
				URL:     value.S.U,
				Width:   value.S.X,
				Height:  value.S.Y,
				Caption: item.Caption,
			})
		}
		return images
	}

	for _, value := range entry.MediaMetadata {
		if value.S == nil || value.S.U == "" || value.S.X == 0 || value.S.Y == 0 {
			continue
		}
		images = append(images, models.Image{
			URL:    value.S.U,
			Width:  value.S.X,
			Height: value.S.Y,
		})
	}
	return images
}

func previewImageURL(entry *models.RedditPostData, parent *models.Post) string {
	if image := firstPreviewImage(entry); image != nil && image.Source != nil && image.Source.URL != "" {
		return image.Source.URL
	}
	if entry.Thumbnail != "" {
		return entry.Thumbnail
	}
	if parent != nil {
		return parent.PreviewImageURL
	}
	return ""
}

// cleanDescription picks selftext (posts) or body (comments), strips the
// zero-width-space artifact reddit prepends to some posts and, for polls,
// the leading "[View Poll](...)" markdown.
func cleanDescription(entry *models.RedditPostData) string {
	text := entry.Selftext
	if text == "" {
		text = entry.Body
	}

	text = zeroWidthSpace.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if entry.PollData != nil {
		text = viewPollLink.ReplaceAllString(text, "")
		text = strings.TrimSpace(text)
	}

	return text
}
