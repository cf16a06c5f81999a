package models

import "encoding/json"

// RedditListing is one element of the array returned by reddit's *.json
// endpoints. The first listing holds the post, later ones hold the comment
// tree when a comment permalink was requested.
type RedditListing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []RedditChild `json:"children"`
	} `json:"data"`
}

type RedditChild struct {
	Kind string         `json:"kind"`
	Data RedditPostData `json:"data"`
}

// RedditPostData mirrors the post/comment payload reddit emits. Almost every
// field is optional and which ones are present depends entirely on the kind
// of post, so consumers must treat absence as normal.
type RedditPostData struct {
	ID        string `json:"id"`
	Subreddit string `json:"subreddit"`
	Permalink string `json:"permalink"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	PostHint  string `json:"post_hint"`
	URL       string `json:"url"`
	Domain    string `json:"domain"`

	Selftext string `json:"selftext"` // content in posts
	Body     string `json:"body"`     // content in comments

	IsRedditMediaDomain bool `json:"is_reddit_media_domain"`
	MediaOnly           bool `json:"media_only"`

	Thumbnail       string `json:"thumbnail"`
	ThumbnailWidth  int    `json:"thumbnail_width"`
	ThumbnailHeight int    `json:"thumbnail_height"`

	Media            *Media            `json:"media"`
	SecureMedia      *SecureMedia      `json:"secure_media"`
	SecureMediaEmbed *SecureMediaEmbed `json:"secure_media_embed"`
	Preview          *Preview          `json:"preview"`

	MediaMetadata map[string]MediaMetadataEntry `json:"media_metadata"`
	GalleryData   *GalleryData                  `json:"gallery_data"`

	PollData *PollData `json:"poll_data"`

	// A crosspost embeds its original post as another full entry. Only the
	// first element is ever consulted.
	CrosspostParentList []RedditPostData `json:"crosspost_parent_list"`

	Replies *CommentReplies `json:"replies"`
}

// CommentReplies works around reddit encoding "no replies" as an empty
// string instead of omitting the field.
type CommentReplies struct {
	Listing *RedditListing
}

func (r *CommentReplies) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || data[0] == '"' {
		return nil
	}
	r.Listing = &RedditListing{}
	return json.Unmarshal(data, r.Listing)
}

// Children returns the reply nodes, or nil when the branch terminates.
func (r *CommentReplies) Children() []RedditChild {
	if r == nil || r.Listing == nil {
		return nil
	}
	return r.Listing.Data.Children
}

type Media struct {
	RedditVideo *RedditVideo `json:"reddit_video"`
	OEmbed      *OEmbedMedia `json:"oembed"`
}

type SecureMedia struct {
	RedditVideo *RedditVideo `json:"reddit_video"`
}

type RedditVideo struct {
	FallbackURL string `json:"fallback_url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	HasAudio    bool   `json:"has_audio"`
}

// OEmbedMedia is the embed metadata reddit itself already resolved for
// third-party media (youtube, twitch, ...).
type OEmbedMedia struct {
	ThumbnailURL    string `json:"thumbnail_url"`
	ThumbnailWidth  int    `json:"thumbnail_width"`
	ThumbnailHeight int    `json:"thumbnail_height"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Title           string `json:"title"`
}

type SecureMediaEmbed struct {
	MediaDomainURL string `json:"media_domain_url"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type Preview struct {
	Images []PreviewImage `json:"images"`
}

type PreviewImage struct {
	Source      *ImageResolution  `json:"source"`
	Resolutions []ImageResolution `json:"resolutions"`
}

type ImageResolution struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MediaMetadataEntry is one gallery image. The s sub-object can be missing
// on deleted or still-processing images; such entries are skipped.
type MediaMetadataEntry struct {
	S *MediaSource `json:"s"`
}

type MediaSource struct {
	X int    `json:"x"` // width
	Y int    `json:"y"` // height
	U string `json:"u"`
}

type GalleryData struct {
	Items []GalleryItem `json:"items"`
}

type GalleryItem struct {
	MediaID string `json:"media_id"`
	Caption string `json:"caption"`
}

type PollData struct {
	TotalVoteCount     int          `json:"total_vote_count"`
	VotingEndTimestamp int64        `json:"voting_end_timestamp"`
	Options            []PollOption `json:"options"`
}

// PollOption's VoteCount is nil while voting is open and counts are hidden.
type PollOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	VoteCount *int   `json:"vote_count"`
}
