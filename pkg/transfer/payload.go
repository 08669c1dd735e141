package transfer

import (
	"encoding/hex"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/matzehuels/pathclip/pkg/errors"
)

// Transport flavors.
const (
	// FlavorText carries a serialized fragment.
	FlavorText = "text/plain"
	// FlavorFileList carries local file paths, as file managers produce.
	FlavorFileList = "application/x-file-list"
	// FlavorURIList carries URIs one per line. Some platforms also put plain
	// text here, so its content is only trusted if it parses as a locator.
	FlavorURIList = "text/uri-list"
)

// Item is one representation of the transferred content.
type Item struct {
	Flavor string   `json:"flavor"`
	Text   string   `json:"text,omitempty"`
	Files  []string `json:"files,omitempty"`
}

// Payload is the content of one transfer: the same data in one or more
// flavors, in order of preference.
type Payload struct {
	Items []Item `json:"items"`
}

// TextPayload returns a payload with exactly the text flavor.
func TextPayload(text string) Payload {
	return Payload{Items: []Item{{Flavor: FlavorText, Text: text}}}
}

// FilePayload returns a payload with the file-list flavor.
func FilePayload(paths ...string) Payload {
	return Payload{Items: []Item{{Flavor: FlavorFileList, Files: paths}}}
}

// IsEmpty reports whether the payload has no items.
func (p Payload) IsEmpty() bool { return len(p.Items) == 0 }

// Item returns the first item of the given flavor. Parameters such as
// charset are ignored.
func (p Payload) Item(flavor string) (Item, bool) {
	for _, it := range p.Items {
		if mimeType(it.Flavor) == flavor {
			return it, true
		}
	}
	return Item{}, false
}

// Flavors lists the flavors present, in payload order.
func (p Payload) Flavors() []string {
	out := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, it.Flavor)
	}
	return out
}

// Size returns the number of bytes of text and file paths carried.
func (p Payload) Size() int {
	n := 0
	for _, it := range p.Items {
		n += len(it.Text)
		for _, f := range it.Files {
			n += len(f)
		}
	}
	return n
}

// Fingerprint identifies the text content of p. Two payloads carrying the
// same fragment text have the same fingerprint; a payload without text has
// an empty one.
func Fingerprint(p Payload) string {
	text, ok := ExtractText(p)
	if !ok {
		return ""
	}
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ExtractText returns the first text item that is not a uri-list.
func ExtractText(p Payload) (string, bool) {
	for _, it := range p.Items {
		if isText(it.Flavor) && mimeType(it.Flavor) != FlavorURIList {
			return it.Text, true
		}
	}
	return "", false
}

// isText reports whether flavor is a text MIME type, ignoring parameters
// such as charset.
func isText(flavor string) bool {
	return strings.HasPrefix(mimeType(flavor), "text/")
}

// mimeType strips the parameters from flavor.
func mimeType(flavor string) string {
	mime, _, _ := strings.Cut(flavor, ";")
	return strings.ToLower(strings.TrimSpace(mime))
}

// ExtractFileLocation returns the document locator carried by p. The first
// entry of a file list wins; otherwise the first line of a uri-list is used
// if it is an absolute file URL.
func ExtractFileLocation(p Payload) (*url.URL, bool) {
	if it, ok := p.Item(FlavorFileList); ok && len(it.Files) > 0 {
		path := it.Files[0]
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		return &url.URL{Scheme: "file", Path: filepath.ToSlash(path)}, true
	}
	if it, ok := p.Item(FlavorURIList); ok {
		first, _, _ := strings.Cut(it.Text, "\n")
		u, err := errors.ValidateLocator(first)
		if err != nil {
			return nil, false
		}
		return u, true
	}
	return nil, false
}
