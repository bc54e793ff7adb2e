// Package includegraphics parses \includegraphics's option list
// (width=, height=, totalheight=, alt=) and resolves the referenced
// image — filesystem path, data URI, or network URL, gated by
// pkg/trust — into the pixel dimensions the box builder needs. Image
// decoding and caching are adapted from the teacher's pkg/images loader;
// network fetch is adapted from its std/net helpers, now routed through
// an injected Fetcher so includegraphics stays decoupled from any one
// HTTP client.
package includegraphics

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"
	"sync"

	"github.com/inkwell-labs/mathlayout/pkg/mathutil"
	"github.com/inkwell-labs/mathlayout/pkg/options"
	"github.com/inkwell-labs/mathlayout/pkg/trust"
)

// Options is the parsed form of \includegraphics's key=value option
// list. A zero WidthPt/HeightPt/TotalHeightPt means "unset, derive from
// the image's natural size".
type Options struct {
	WidthPt       float64
	HeightPt      float64
	TotalHeightPt float64
	Alt           string
}

// ParseOptions parses the raw key=value pairs ast.Node.GraphicsOptions
// carries. Unknown keys are ignored rather than rejected, matching the
// permissive option-list convention elsewhere in math markup.
func ParseOptions(raw map[string]string) Options {
	var o Options
	for k, v := range raw {
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "width":
			o.WidthPt = parseLengthPt(v)
		case "height":
			o.HeightPt = parseLengthPt(v)
		case "totalheight":
			o.TotalHeightPt = parseLengthPt(v)
		case "alt":
			o.Alt = v
		}
	}
	return o
}

// parseLengthPt parses a length like "3.5pt", "2cm", or a bare number
// (assumed pt). Unrecognized units fall back to treating the numeric
// prefix as pt.
func parseLengthPt(v string) float64 {
	v = strings.TrimSpace(v)
	var numEnd int
	for numEnd < len(v) && (v[numEnd] == '.' || v[numEnd] == '-' || (v[numEnd] >= '0' && v[numEnd] <= '9')) {
		numEnd++
	}
	if numEnd == 0 {
		return 0
	}
	var n float64
	fmt.Sscanf(v[:numEnd], "%g", &n)
	unit := strings.ToLower(v[numEnd:])
	switch unit {
	case "cm":
		return n * 28.4527
	case "mm":
		return n * 2.84527
	case "in":
		return n * 72.27
	default: // "pt" or unrecognized
		return n
	}
}

// Fetcher retrieves raw bytes for a network or relative-path image
// reference. Callers supply a concrete implementation (an HTTP client,
// a filesystem root); includegraphics never constructs one itself.
type Fetcher func(ref string) ([]byte, error)

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]image.Image)
)

// IsDataURI reports whether ref is a data: URI.
func IsDataURI(ref string) bool { return strings.HasPrefix(ref, "data:") }

// IsNetworkRef reports whether ref looks like an http(s) URL.
func IsNetworkRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// decodeDataURI decodes a data:[mediatype][;base64],<data> URI.
func decodeDataURI(uri string) (image.Image, error) {
	rest := strings.TrimPrefix(uri, "data:")
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return nil, fmt.Errorf("invalid data URI: no comma")
	}
	meta, encoded := rest[:comma], rest[comma+1:]
	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		if decoded, err := url.PathUnescape(encoded); err == nil {
			encoded = decoded
		}
		b, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("base64 decode: %w", err)
		}
		data = b
	} else {
		data = []byte(encoded)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode: %w", err)
	}
	return img, nil
}

// Load resolves src to a decoded image, consulting the process-wide
// cache first. Network references are only fetched if opts permits
// trust.URL; otherwise Load returns mathutil.UntrustedCommand.
func Load(src string, opts *options.Options, fetch Fetcher) (image.Image, mathutil.AppError) {
	cacheMu.RLock()
	if img, ok := cache[src]; ok {
		cacheMu.RUnlock()
		return img, nil
	}
	cacheMu.RUnlock()

	var img image.Image
	var err error

	switch {
	case IsDataURI(src):
		img, err = decodeDataURI(src)
	case IsNetworkRef(src):
		if !trust.Check(opts, trust.URL) {
			return nil, mathutil.UntrustedCommand(string(trust.URL))
		}
		if fetch == nil {
			return nil, mathutil.ImageLoadFailed(src, fmt.Errorf("no fetcher configured for network images"))
		}
		data, ferr := fetch(src)
		if ferr != nil {
			return nil, mathutil.ImageLoadFailed(src, ferr)
		}
		img, _, err = image.Decode(bytes.NewReader(data))
	default:
		if fetch == nil {
			return nil, mathutil.ImageLoadFailed(src, fmt.Errorf("no fetcher configured for filesystem images"))
		}
		data, ferr := fetch(src)
		if ferr != nil {
			return nil, mathutil.ImageLoadFailed(src, ferr)
		}
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, mathutil.ImageLoadFailed(src, err)
	}

	cacheMu.Lock()
	cache[src] = img
	cacheMu.Unlock()
	return img, nil
}

// ResolvedSize computes the final width/height in pt, honoring whichever
// combination of width=/height=/totalheight= was set, deriving the
// unset dimension from the image's own aspect ratio. totalheight, when
// set, is height+depth together; callers that need a depth split should
// derive depth themselves (includegraphics has no baseline concept of
// its own).
func ResolvedSize(opts Options, naturalWidthPx, naturalHeightPx int) (widthPt, heightPt float64) {
	aspect := float64(naturalHeightPx) / float64(naturalWidthPx)
	if naturalWidthPx == 0 {
		aspect = 1
	}
	switch {
	case opts.WidthPt > 0 && opts.HeightPt > 0:
		return opts.WidthPt, opts.HeightPt
	case opts.WidthPt > 0 && opts.TotalHeightPt > 0:
		return opts.WidthPt, opts.TotalHeightPt
	case opts.WidthPt > 0:
		return opts.WidthPt, opts.WidthPt * aspect
	case opts.HeightPt > 0:
		return opts.HeightPt / aspect, opts.HeightPt
	case opts.TotalHeightPt > 0:
		return opts.TotalHeightPt / aspect, opts.TotalHeightPt
	default:
		return float64(naturalWidthPx), float64(naturalHeightPx)
	}
}
