package models

// Post is the canonical, normalized form of a reddit submission or comment.
// It is built once per request from the fetched listing and never mutated
// afterwards.
type Post struct {
	Subreddit string
	Title     string
	Author    string
	Permalink string
	Domain    string
	PostHint  string // "image", "hosted:video", "link"; anything else is treated as a link
	URL       string

	// Cleaned selftext (posts) or body (comments).
	Description string

	IsRedditMedia bool
	IsMediaOnly   bool

	PreviewImageURL string
	Resolution      *Resolution

	VideoURL      string
	VideoHasAudio bool

	OEmbed           *OEmbedMedia
	MediaMetadata    []Image
	SecureMediaEmbed *SecureMediaEmbed
	PollData         *PollData

	// The normalized comment when a comment permalink was requested.
	Comment *Post
}

// Resolution is the best-known dimensions of the post's primary media.
type Resolution struct {
	Width  int
	Height int
}

// Image is one ordered gallery item.
type Image struct {
	URL     string
	Width   int
	Height  int
	Caption string
}

// PackagedVideo is reddit's combined audio+video rendition of a hosted
// video, resolved separately from the listing.
type PackagedVideo struct {
	URL        string     `json:"url"`
	Dimensions Dimensions `json:"dimensions"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
