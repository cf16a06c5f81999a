package reddit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxddit/rxddit/models"
)

func TestParse_HostedVideoForcesHint(t *testing.T) {
	entry := &models.RedditPostData{
		PostHint: "image",
		Media: &models.Media{
			RedditVideo: &models.RedditVideo{
				FallbackURL: "https://v.redd.it/abc/DASH_720.mp4",
				Width:       1280,
				Height:      720,
				HasAudio:    false,
			},
		},
	}

	post := Parse(entry)

	assert.Equal(t, "hosted:video", post.PostHint)
	assert.Equal(t, "https://v.redd.it/abc/DASH_720.mp4", post.VideoURL)
	assert.False(t, post.VideoHasAudio)
	require.NotNil(t, post.Resolution)
	assert.Equal(t, 1280, post.Resolution.Width)
	assert.Equal(t, 720, post.Resolution.Height)
}

func TestParse_SecureMediaVideoURLKeepsHint(t *testing.T) {
	entry := &models.RedditPostData{
		PostHint: "link",
		SecureMedia: &models.SecureMedia{
			RedditVideo: &models.RedditVideo{FallbackURL: "https://v.redd.it/xyz"},
		},
	}

	post := Parse(entry)

	assert.Equal(t, "link", post.PostHint)
	assert.Equal(t, "https://v.redd.it/xyz", post.VideoURL)
}

func TestParse_CrosspostInheritsVideo(t *testing.T) {
	entry := &models.RedditPostData{
		PostHint: "link",
		CrosspostParentList: []models.RedditPostData{{
			Media: &models.Media{
				RedditVideo: &models.RedditVideo{
					FallbackURL: "https://v.redd.it/parent/DASH_1080.mp4",
					Width:       1920,
					Height:      1080,
					HasAudio:    true,
				},
			},
		}},
	}

	post := Parse(entry)

	assert.Equal(t, "hosted:video", post.PostHint)
	assert.Equal(t, "https://v.redd.it/parent/DASH_1080.mp4", post.VideoURL)
	assert.True(t, post.VideoHasAudio)
	require.NotNil(t, post.Resolution)
	assert.Equal(t, 1920, post.Resolution.Width)
}

func TestParse_CrosspostOwnVideoWins(t *testing.T) {
	entry := &models.RedditPostData{
		Media: &models.Media{
			RedditVideo: &models.RedditVideo{FallbackURL: "own", Width: 1, Height: 2},
		},
		CrosspostParentList: []models.RedditPostData{{
			Media: &models.Media{
				RedditVideo: &models.RedditVideo{FallbackURL: "parent"},
			},
		}},
	}

	post := Parse(entry)
	assert.Equal(t, "own", post.VideoURL)
}

func TestParse_CrosspostChainNotFollowed(t *testing.T) {
	// The grandparent has the video; only one level of crosspost parents is
	// consulted, so nothing is inherited from it.
	entry := &models.RedditPostData{
		CrosspostParentList: []models.RedditPostData{{
			CrosspostParentList: []models.RedditPostData{{
				Media: &models.Media{
					RedditVideo: &models.RedditVideo{FallbackURL: "grandparent"},
				},
			}},
		}},
	}

	post := Parse(entry)
	assert.Empty(t, post.VideoURL)
}

func TestParse_PreviewSourceResolution(t *testing.T) {
	entry := &models.RedditPostData{
		Preview: &models.Preview{Images: []models.PreviewImage{{
			Source: &models.ImageResolution{URL: "https://i.redd.it/a.jpg", Width: 800, Height: 600},
		}}},
	}

	post := Parse(entry)

	require.NotNil(t, post.Resolution)
	assert.Equal(t, 800, post.Resolution.Width)
	assert.Equal(t, "https://i.redd.it/a.jpg", post.PreviewImageURL)
}

func TestParse_PreviewFallsBackToLargestResolution(t *testing.T) {
	entry := &models.RedditPostData{
		Preview: &models.Preview{Images: []models.PreviewImage{{
			Resolutions: []models.ImageResolution{
				{Width: 108, Height: 81},
				{Width: 216, Height: 162},
				{Width: 640, Height: 480},
			},
		}}},
	}

	post := Parse(entry)

	require.NotNil(t, post.Resolution)
	assert.Equal(t, 640, post.Resolution.Width)
	assert.Equal(t, 480, post.Resolution.Height)
}

func TestParse_ThumbnailOnlyWithoutPreview(t *testing.T) {
	entry := &models.RedditPostData{
		Thumbnail:       "https://b.thumbs.redditmedia.com/x.jpg",
		ThumbnailWidth:  140,
		ThumbnailHeight: 105,
	}

	post := Parse(entry)

	require.NotNil(t, post.Resolution)
	assert.Equal(t, 140, post.Resolution.Width)
	assert.Equal(t, "https://b.thumbs.redditmedia.com/x.jpg", post.PreviewImageURL)
}

func TestParse_EmptyPreviewBlocksThumbnailFallback(t *testing.T) {
	// A preview images list with neither source nor resolutions terminates
	// the chain; the thumbnail dimensions are not consulted.
	entry := &models.RedditPostData{
		Preview:         &models.Preview{Images: []models.PreviewImage{{}}},
		ThumbnailWidth:  140,
		ThumbnailHeight: 105,
	}

	post := Parse(entry)
	assert.Nil(t, post.Resolution)
}

func TestParse_GalleryOrderFollowsGalleryData(t *testing.T) {
	entry := &models.RedditPostData{
		GalleryData: &models.GalleryData{Items: []models.GalleryItem{
			{MediaID: "b"},
			{MediaID: "a"},
		}},
		MediaMetadata: map[string]models.MediaMetadataEntry{
			"a": {S: &models.MediaSource{X: 10, Y: 20, U: "A"}},
			"b": {S: &models.MediaSource{X: 1, Y: 2, U: "B"}},
		},
	}

	post := Parse(entry)

	require.Len(t, post.MediaMetadata, 2)
	assert.Equal(t, models.Image{URL: "B", Width: 1, Height: 2}, post.MediaMetadata[0])
	assert.Equal(t, models.Image{URL: "A", Width: 10, Height: 20}, post.MediaMetadata[1])
}

func TestParse_GalleryDropsMissingSource(t *testing.T) {
	entry := &models.RedditPostData{
		GalleryData: &models.GalleryData{Items: []models.GalleryItem{
			{MediaID: "a"},
			{MediaID: "b"},
		}},
		MediaMetadata: map[string]models.MediaMetadataEntry{
			"a": {},
			"b": {S: &models.MediaSource{X: 1, Y: 1, U: "U"}},
		},
	}

	post := Parse(entry)

	require.Len(t, post.MediaMetadata, 1)
	assert.Equal(t, "U", post.MediaMetadata[0].URL)
}

func TestParse_GalleryCaptionsCarried(t *testing.T) {
	entry := &models.RedditPostData{
		GalleryData: &models.GalleryData{Items: []models.GalleryItem{
			{MediaID: "a", Caption: "first"},
		}},
		MediaMetadata: map[string]models.MediaMetadataEntry{
			"a": {S: &models.MediaSource{X: 1, Y: 1, U: "U"}},
		},
	}

	post := Parse(entry)

	require.Len(t, post.MediaMetadata, 1)
	assert.Equal(t, "first", post.MediaMetadata[0].Caption)
}

func TestParse_GalleryWithoutGalleryData(t *testing.T) {
	entry := &models.RedditPostData{
		MediaMetadata: map[string]models.MediaMetadataEntry{
			"a": {S: &models.MediaSource{X: 1, Y: 1, U: "U"}},
			"b": {}, // skipped
		},
	}

	post := Parse(entry)

	require.Len(t, post.MediaMetadata, 1)
	assert.Empty(t, post.MediaMetadata[0].Caption)
}

func TestParse_CrosspostGalleryInheritedOnlyWhenEmpty(t *testing.T) {
	parentGallery := models.RedditPostData{
		GalleryData: &models.GalleryData{Items: []models.GalleryItem{{MediaID: "p"}}},
		MediaMetadata: map[string]models.MediaMetadataEntry{
			"p": {S: &models.MediaSource{X: 5, Y: 5, U: "P"}},
		},
	}

	inherited := Parse(&models.RedditPostData{
		CrosspostParentList: []models.RedditPostData{parentGallery},
	})
	require.Len(t, inherited.MediaMetadata, 1)
	assert.Equal(t, "P", inherited.MediaMetadata[0].URL)

	own := Parse(&models.RedditPostData{
		GalleryData: &models.GalleryData{Items: []models.GalleryItem{{MediaID: "o"}}},
		MediaMetadata: map[string]models.MediaMetadataEntry{
			"o": {S: &models.MediaSource{X: 7, Y: 7, U: "O"}},
		},
		CrosspostParentList: []models.RedditPostData{parentGallery},
	})
	require.Len(t, own.MediaMetadata, 1)
	assert.Equal(t, "O", own.MediaMetadata[0].URL)
}

func TestParse_PreviewImageURLInheritedFromCrosspost(t *testing.T) {
	entry := &models.RedditPostData{
		CrosspostParentList: []models.RedditPostData{{
			Preview: &models.Preview{Images: []models.PreviewImage{{
				Source: &models.ImageResolution{URL: "https://i.redd.it/parent.jpg"},
			}}},
		}},
	}

	post := Parse(entry)
	assert.Equal(t, "https://i.redd.it/parent.jpg", post.PreviewImageURL)
}

func TestParse_DescriptionStripsZeroWidthSpace(t *testing.T) {
	entry := &models.RedditPostData{Selftext: "&amp;#x200B;hello there"}
	assert.Equal(t, "hello there", Parse(entry).Description)
}

func TestParse_DescriptionUsesCommentBody(t *testing.T) {
	entry := &models.RedditPostData{Body: "a comment"}
	assert.Equal(t, "a comment", Parse(entry).Description)
}

func TestParse_DescriptionStripsViewPollOnlyForPolls(t *testing.T) {
	withPoll := &models.RedditPostData{
		Selftext: "[View Poll](https://www.reddit.com/poll/abc)\n\nWhich one?",
		PollData: &models.PollData{TotalVoteCount: 3},
	}
	assert.Equal(t, "Which one?", Parse(withPoll).Description)

	caseInsensitive := &models.RedditPostData{
		Selftext: "[view poll](https://www.reddit.com/poll/abc)",
		PollData: &models.PollData{},
	}
	assert.Empty(t, Parse(caseInsensitive).Description)

	withoutPoll := &models.RedditPostData{
		Selftext: "[View Poll](https://www.reddit.com/poll/abc)",
	}
	assert.Equal(t, "[View Poll](https://www.reddit.com/poll/abc)", Parse(withoutPoll).Description)
}

func TestParse_ViewPollOnlyStrippedAtStart(t *testing.T) {
	entry := &models.RedditPostData{
		Selftext: "intro [View Poll](https://www.reddit.com/poll/abc)",
		PollData: &models.PollData{},
	}
	assert.Equal(t, "intro [View Poll](https://www.reddit.com/poll/abc)", Parse(entry).Description)
}
