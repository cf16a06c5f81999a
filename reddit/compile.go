package reddit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/rxddit/rxddit/config"
	"github.com/rxddit/rxddit/embeds"
	"github.com/rxddit/rxddit/meta"
	"github.com/rxddit/rxddit/models"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// Compiler turns a normalized post into the metadata document served to
// preview crawlers. Auxiliary lookups (packaged video, domain resolvers) run
// under a bounded timeout and degrade to the next fallback on any failure.
type Compiler struct {
	logger          *slog.Logger
	client          *Client
	registry        *embeds.Registry
	domain          string
	themeColor      string
	resolverTimeout time.Duration
}

func NewCompiler(logger *slog.Logger, client *Client, registry *embeds.Registry, cfg config.AppConfig) *Compiler {
	return &Compiler{
		logger:          logger,
		client:          client,
		registry:        registry,
		domain:          cfg.CustomDomain,
		themeColor:      cfg.ThemeColor,
		resolverTimeout: cfg.ResolverTimeout,
	}
}

// Compile emits the full metadata document for a post. It never fails: a
// post that cannot be enriched still gets titles, links and a description.
func (c *Compiler) Compile(ctx context.Context, post *models.Post) string {
	head := meta.NewHead()
	originalURL := "https://www.reddit.com" + post.Permalink
	authorName := "u/" + post.Author + " on r/" + post.Subreddit

	head.AddMeta("og:title", authorName)
	head.AddMeta("twitter:title", authorName)
	head.AddMeta("twitter:creator", post.Title)

	head.AddLink(
		[2]string{"rel", "alternate"},
		[2]string{"type", "application/json+oembed"},
		[2]string{"title", authorName},
		[2]string{"href", EncodeOEmbed(c.domain, OEmbed{
			Type:         "link",
			AuthorName:   post.Title,
			AuthorURL:    originalURL,
			ProviderName: c.domain,
			Version:      "1.0",
		})},
	)

	head.AddLink(
		[2]string{"rel", "canonical"},
		[2]string{"href", originalURL},
	)
	head.AddMeta("og:url", originalURL)

	head.AddMeta("og:site_name", c.domain)
	head.AddMeta("twitter:site", c.domain)
	head.AddMeta("theme-color", c.themeColor)

	descriptionText := post.Description
	var descriptionStatus []string

	ogType := "object"

	switch post.PostHint {
	case "image":
		ogType = "photo"
		head.AddImage(post.URL, resWidth(post), resHeight(post), meta.SizeLarge)

	case "hosted:video":
		ogType = "video.other"
		c.compileHostedVideo(ctx, post, head)

	default:
		ogType = c.compileLink(ctx, post, head, &descriptionText, &descriptionStatus)
	}

	head.AddMeta("og:type", ogType)

	if post.Comment != nil && post.Comment.Author != "" {
		descriptionText = mergeComment(post.Comment, descriptionText)
	}

	pollDescription := ""
	if post.PollData != nil {
		pollDescription = compilePollData(post.PollData)
	}

	description := strings.TrimSpace(strings.Join([]string{
		strings.Join(descriptionStatus, " "),
		descriptionText,
		pollDescription,
	}, "\n\n"))
	if description != "" {
		head.AddMeta("og:description", description)
		head.AddMeta("twitter:description", description)
	}

	return head.Render()
}

// compileHostedVideo prefers the packaged (audio+video) rendition, embedded
// through our own /v proxy so the expiring signed URL never ends up in a
// crawler cache. Without one we settle for the possibly silent fallback URL
// reddit put in the listing.
func (c *Compiler) compileHostedVideo(ctx context.Context, post *models.Post, head *meta.Head) {
	ctx, cancel := context.WithTimeout(ctx, c.resolverTimeout)
	defer cancel()

	if packaged := c.client.PackagedVideo(ctx, post.Permalink); packaged != nil {
		head.AddVideo("/v"+post.Permalink, packaged.Dimensions.Width, packaged.Dimensions.Height, "video/mp4")
		return
	}

	videoURL := post.VideoURL
	if videoURL == "" {
		videoURL = post.URL
	}
	head.AddVideo(videoURL, resWidth(post), resHeight(post), "video/mp4")
}

// compileLink handles link posts and everything without a usable hint:
// domain resolver, then gallery, then oembed thumbnail, then preview image,
// then URL suffix sniffing. Returns the og:type of whichever branch won.
func (c *Compiler) compileLink(ctx context.Context, post *models.Post, head *meta.Head, descriptionText *string, descriptionStatus *[]string) string {
	if resolver, ogType, ok := c.registry.Lookup(post.Domain); ok {
		resolverCtx, cancel := context.WithTimeout(ctx, c.resolverTimeout)
		defer cancel()

		err := resolver.Resolve(resolverCtx, post, post.URL, head)
		if err == nil {
			return ogType
		}
		c.logger.Warn("domain resolver failed", "domain", post.Domain, "url", post.URL, "error", err)
	}

	switch {
	case len(post.MediaMetadata) > 0:
		c.compileGallery(post, head, descriptionStatus)

	case post.OEmbed != nil:
		head.AddImage(post.OEmbed.ThumbnailURL, 0, 0, imageSize(post))
		*descriptionText += post.OEmbed.Title

	case post.PreviewImageURL != "":
		head.AddImage(post.PreviewImageURL, resWidth(post), resHeight(post), imageSize(post))

	case strings.HasPrefix(post.URL, "https://"):
		u, err := url.Parse(post.URL)
		if err != nil {
			break
		}
		if isImagePath(u.Path) {
			head.AddImage(post.URL, resWidth(post), resHeight(post), meta.SizeLarge)
		} else if strings.HasSuffix(u.Path, ".mp4") {
			head.AddVideo(post.URL, 0, 0, "video/mp4")
		}
	}

	return "object"
}

func (c *Compiler) compileGallery(post *models.Post, head *meta.Head, descriptionStatus *[]string) {
	head.AddMeta("twitter:card", "summary_large_image")
	amount := len(post.MediaMetadata)

	if amount > 1 {
		*descriptionStatus = append(*descriptionStatus, fmt.Sprintf("🖼️ Gallery: %d Images", amount))
	}

	index := 1
	for _, image := range post.MediaMetadata {
		head.AddImage(image.URL, image.Width, image.Height, meta.SizeNone)
		if image.Caption != "" {
			head.AddMeta("twitter:image:alt", image.Caption)
			head.AddMeta("og:image:alt", image.Caption)
		} else if amount > 1 {
			alt := fmt.Sprintf("Image %d of %d", index, amount)
			head.AddMeta("twitter:image:alt", alt)
			head.AddMeta("og:image:alt", alt)
			index++
		}
	}
}

// mergeComment puts the requested comment in front of the post text, unless
// the combination would blow past what preview cards display; then the
// comment alone wins.
func mergeComment(comment *models.Post, descriptionText string) string {
	commentText := "Comment by u/" + comment.Author
	if comment.Description != "" {
		commentText += ":\n" + comment.Description
	}

	if len(commentText) < 1000 {
		return commentText + "\n\n---- Original Post ----\n\n" + descriptionText
	}
	return commentText
}

func compilePollData(poll *models.PollData) string {
	maxVotes := 0
	for _, option := range poll.Options {
		if option.VoteCount != nil && *option.VoteCount > maxVotes {
			maxVotes = *option.VoteCount
		}
	}

	answers := make([]string, 0, len(poll.Options))
	for _, option := range poll.Options {
		if option.VoteCount == nil {
			answers = append(answers, "- "+option.Text)
			continue
		}

		decoration := ""
		if *option.VoteCount == maxVotes {
			decoration = " 🥇"
		}
		answers = append(answers, fmt.Sprintf("%s (%d votes)\n%s%s",
			option.Text, *option.VoteCount, pollAnswerBar(*option.VoteCount, poll.TotalVoteCount), decoration))
	}

	return fmt.Sprintf("📊 Poll:\n\n%s\n\nTotal Votes: %d", strings.Join(answers, "\n"), poll.TotalVoteCount)
}

// pollAnswerBar renders a bar of up to 20 glyphs scaled by vote share.
// Votes above the reported total clamp to a full bar.
func pollAnswerBar(votes, totalVotes int) string {
	if votes <= 0 {
		return ""
	}
	percentage := 1.0
	if totalVotes > 0 {
		percentage = math.Min(float64(votes)/float64(totalVotes), 1.0)
	}
	return strings.Repeat("▇", int(20*percentage))
}

func imageSize(post *models.Post) meta.ImageSize {
	if post.IsMediaOnly {
		return meta.SizeLarge
	}
	return meta.SizeThumbnail
}

func isImagePath(path string) bool {
	for _, extension := range imageExtensions {
		if strings.HasSuffix(path, extension) {
			return true
		}
	}
	return false
}

func resWidth(post *models.Post) int {
	if post.Resolution == nil {
		return 0
	}
	return post.Resolution.Width
}

func resHeight(post *models.Post) int {
	if post.Resolution == nil {
		return 0
	}
	return post.Resolution.Height
}
