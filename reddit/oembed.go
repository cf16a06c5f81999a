package reddit

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// OEmbed is the small descriptor served from the /oembed endpoint. It rides
// inside its own URL as a base64url query parameter, so the endpoint needs
// no storage.
type OEmbed struct {
	Type         string `json:"type"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url,omitempty"`
	ProviderName string `json:"provider_name"`
	Version      string `json:"version"`
}

var ErrInvalidOEmbed = errors.New("invalid oembed payload")

// EncodeOEmbed serializes the descriptor into a self-describing URL on the
// given domain.
func EncodeOEmbed(domain string, embed OEmbed) string {
	raw, _ := json.Marshal(embed)
	return "https://" + domain + "/oembed?embed=" + base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeOEmbed is the inverse of EncodeOEmbed, taking just the query
// parameter value. Anything that is not valid base64url-encoded JSON yields
// ErrInvalidOEmbed; the endpoint maps that to a 404 rather than a parse
// error.
func DecodeOEmbed(param string) (*OEmbed, error) {
	if param == "" {
		return nil, ErrInvalidOEmbed
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(param, "="))
	if err != nil {
		return nil, ErrInvalidOEmbed
	}

	var embed OEmbed
	if err := json.Unmarshal(raw, &embed); err != nil {
		return nil, ErrInvalidOEmbed
	}

	return &embed, nil
}
