package reddit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rxddit/rxddit/config"
	"github.com/rxddit/rxddit/models"
)

// Client fetches post listings and packaged videos from reddit. All methods
// are safe for concurrent use.
type Client struct {
	logger    *slog.Logger
	http      *http.Client
	baseURL   string
	shortURL  string
	userAgent string
}

func NewClient(logger *slog.Logger, httpClient *http.Client, cfg config.AppConfig) *Client {
	return &Client{
		logger:    logger,
		http:      httpClient,
		baseURL:   cfg.RedditBaseURL,
		shortURL:  cfg.RedditShortURL,
		userAgent: cfg.UserAgent,
	}
}

// CleanSpoiler strips the trailing spoiler markdown some chat clients leave
// on pasted links. The suffix shows up raw in route params and
// percent-encoded in request URIs.
func CleanSpoiler(s string) string {
	s = strings.TrimSuffix(s, "%7C%7C")
	return strings.TrimSuffix(s, "||")
}

func (c *Client) SubredditPost(ctx context.Context, subreddit, id, slug, ref string) (*models.Post, error) {
	return c.getPost(ctx, c.postURL("r", subreddit, id, slug, ref), ref)
}

func (c *Client) ProfilePost(ctx context.Context, user, id, slug, ref string) (*models.Post, error) {
	return c.getPost(ctx, c.postURL("user", user, id, slug, ref), ref)
}

func (c *Client) UntypedPost(ctx context.Context, id, slug, ref string) (*models.Post, error) {
	return c.getPost(ctx, c.postURL("", "", id, slug, ref), ref)
}

// ShortLinkPost resolves a redd.it short link by following its redirect and
// fetching the JSON form of wherever it lands.
func (c *Client) ShortLinkPost(ctx context.Context, id string) (*models.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.shortURL+"/"+CleanSpoiler(id), nil)
	if err != nil {
		return nil, errors.Wrap(err, "short link request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "resolve short link")
	}
	defer resp.Body.Close()

	return c.getPost(ctx, resp.Request.URL.String()+".json", "")
}

func (c *Client) postURL(kind, name, id, slug, ref string) string {
	url := c.baseURL
	if kind != "" {
		url += "/" + kind
		if name != "" {
			url += "/" + name
		}
	}

	switch {
	case slug != "" && ref != "":
		url += "/comments/" + id + "/" + slug + "/" + CleanSpoiler(ref) + ".json"
	case slug != "":
		url += "/comments/" + id + "/" + CleanSpoiler(slug) + ".json"
	case ref != "":
		url += "/comments/" + id + "/comment/" + CleanSpoiler(ref) + ".json"
	default:
		url += "/" + CleanSpoiler(id) + ".json"
	}

	return url
}

func (c *Client) getPost(ctx context.Context, url, commentRef string) (*models.Post, error) {
	timer := prometheus.NewTimer(fetchDuration.WithLabelValues("listing"))
	defer timer.ObserveDuration()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "listing request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch listing")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPostNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var listings []models.RedditListing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, errors.Wrap(err, "decode listing")
	}

	if len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return nil, ErrPostNotFound
	}

	post := Parse(&listings[0].Data.Children[0].Data)
	if commentRef != "" {
		ref := CleanSpoiler(commentRef)
		for _, listing := range listings {
			if comment := FindComment(listing.Data.Children, ref); comment != nil {
				post.Comment = Parse(comment)
				break
			}
		}
	}

	return post, nil
}

// PackagedVideo scrapes the post page for reddit's combined audio+video
// rendition. Any failure means "no packaged video"; callers fall back to the
// silent fallback URL from the listing.
func (c *Client) PackagedVideo(ctx context.Context, permalink string) *models.PackagedVideo {
	timer := prometheus.NewTimer(fetchDuration.WithLabelValues("packaged_video"))
	defer timer.ObserveDuration()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+permalink, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("packaged video fetch failed", "permalink", permalink, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.logger.Debug("packaged video parse failed", "permalink", permalink, "error", err)
		return nil
	}

	jsonString, ok := doc.Find("[packaged-media-json]").First().Attr("packaged-media-json")
	if !ok || jsonString == "" {
		return nil
	}

	var media struct {
		PlaybackMp4s struct {
			Permutations []struct {
				Source models.PackagedVideo `json:"source"`
			} `json:"permutations"`
		} `json:"playbackMp4s"`
	}
	if err := json.Unmarshal([]byte(jsonString), &media); err != nil {
		c.logger.Debug("packaged media json malformed", "permalink", permalink, "error", err)
		return nil
	}

	videos := media.PlaybackMp4s.Permutations
	if len(videos) == 0 {
		return nil
	}

	// Permutations are ordered ascending by quality.
	source := videos[len(videos)-1].Source
	return &source
}
