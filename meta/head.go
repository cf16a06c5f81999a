// Package meta builds the metadata head of the HTML documents served to
// link-preview crawlers.
package meta

import (
	"html"
	"strconv"
	"strings"
)

type ImageSize string

const (
	SizeNone      ImageSize = ""
	SizeLarge     ImageSize = "large"
	SizeThumbnail ImageSize = "thumbnail"
)

type attribute struct {
	key   string
	value string
}

type tag struct {
	name  string
	attrs []attribute
}

// Head owns an ordered list of meta/link tags. Tag order is preserved in the
// rendered output; preview crawlers read some tags positionally.
type Head struct {
	tags []tag
}

func NewHead() *Head {
	return &Head{}
}

// AddMeta appends a <meta property=... content=...> tag.
func (h *Head) AddMeta(property, content string) {
	h.tags = append(h.tags, tag{
		name: "meta",
		attrs: []attribute{
			{"property", property},
			{"content", content},
		},
	})
}

// AddLink appends a <link> tag with the attributes in the given order.
func (h *Head) AddLink(attrs ...[2]string) {
	t := tag{name: "link"}
	for _, a := range attrs {
		t.attrs = append(t.attrs, attribute{a[0], a[1]})
	}
	h.tags = append(h.tags, t)
}

// AddImage appends the og/twitter tag pair for an image. Zero dimensions are
// omitted. The size hint decides which twitter card the embed renders as.
func (h *Head) AddImage(url string, width, height int, size ImageSize) {
	switch size {
	case SizeLarge:
		h.AddMeta("twitter:card", "summary_large_image")
	case SizeThumbnail:
		h.AddMeta("twitter:card", "summary")
	}
	h.AddMeta("twitter:image:src", url)
	h.AddMeta("og:image", url)
	if width > 0 && height > 0 {
		h.AddMeta("og:image:width", strconv.Itoa(width))
		h.AddMeta("og:image:height", strconv.Itoa(height))
	}
}

// AddVideo appends the og/twitter tag group for a video player.
func (h *Head) AddVideo(url string, width, height int, mimeType string) {
	if mimeType == "" {
		mimeType = "video/mp4"
	}
	h.AddMeta("twitter:player", url)
	h.AddMeta("og:video", url)
	h.AddMeta("og:video:secure_url", url)
	h.AddMeta("og:video:type", mimeType)
	if width > 0 && height > 0 {
		h.AddMeta("og:video:width", strconv.Itoa(width))
		h.AddMeta("og:video:height", strconv.Itoa(height))
		h.AddMeta("twitter:player:width", strconv.Itoa(width))
		h.AddMeta("twitter:player:height", strconv.Itoa(height))
	}
}

// Render serializes the head into a complete HTML document.
func (h *Head) Render() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head>")
	for _, t := range h.tags {
		b.WriteByte('<')
		b.WriteString(t.name)
		for _, a := range t.attrs {
			b.WriteByte(' ')
			b.WriteString(a.key)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(a.value))
			b.WriteByte('"')
		}
		b.WriteByte('>')
	}
	b.WriteString("</head></html>")
	return b.String()
}

// RedirectPage is the document body served alongside a Location header, for
// clients that ignore the header.
func RedirectPage(url string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta http-equiv="Refresh" content="0; URL=`)
	b.WriteString(html.EscapeString(url))
	b.WriteString(`"></head></html>`)
	return b.String()
}
