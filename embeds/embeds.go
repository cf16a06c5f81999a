// Package embeds enriches link posts with metadata scraped from the linked
// site. Each supported outbound domain has its own resolver; everything else
// falls through to the compiler's generic handling.
package embeds

import (
	"context"
	"net/http"

	"github.com/rxddit/rxddit/meta"
	"github.com/rxddit/rxddit/models"
)

// Resolver enriches the head for one outbound domain. Implementations must
// tolerate missing fields on the remote page by skipping the corresponding
// tags rather than failing.
type Resolver interface {
	Resolve(ctx context.Context, post *models.Post, link string, head *meta.Head) error
}

// NoopResolver is the explicit default for domains without a handler.
type NoopResolver struct{}

func (NoopResolver) Resolve(context.Context, *models.Post, string, *meta.Head) error {
	return nil
}

type registration struct {
	resolver Resolver
	ogType   string
}

// Registry maps outbound link domains to resolvers by exact hostname match.
type Registry struct {
	handlers map[string]registration
}

func NewRegistry(client *http.Client, userAgent string, twitchAncestors []string) *Registry {
	youtube := &YouTubeResolver{client: client, userAgent: userAgent}
	twitch := &TwitchResolver{ancestors: twitchAncestors}
	twitter := &TwitterResolver{client: client, mirrorURL: "https://fxtwitter.com"}
	imgur := &ImgurResolver{client: client, userAgent: userAgent}
	redgif := &RedgifResolver{client: client, userAgent: userAgent}
	imageHost := &ImageHostResolver{}

	r := &Registry{handlers: map[string]registration{}}
	r.register(youtube, "video.other", "youtu.be", "www.youtube.com", "youtube.com")
	r.register(twitch, "video.other", "clips.twitch.tv", "www.twitch.tv")
	r.register(twitter, "summary", "twitter.com", "x.com")
	r.register(imgur, "video.other", "imgur.com", "i.imgur.com")
	r.register(redgif, "video.other", "redgifs.com", "www.redgifs.com", "v3.redgifs.com")
	r.register(imageHost, "object", "i.ibb.co", "ibb.co", "postimg.cc", "i.postimg.cc")
	return r
}

func (r *Registry) register(resolver Resolver, ogType string, domains ...string) {
	for _, domain := range domains {
		r.handlers[domain] = registration{resolver: resolver, ogType: ogType}
	}
}

// Lookup returns the resolver for a domain and the og:type it produces. An
// unmatched domain returns the NoopResolver and ok=false; the caller then
// runs its generic fallback chain.
func (r *Registry) Lookup(domain string) (Resolver, string, bool) {
	if reg, ok := r.handlers[domain]; ok {
		return reg.resolver, reg.ogType, true
	}
	return NoopResolver{}, "object", false
}
