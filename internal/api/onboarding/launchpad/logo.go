// internal/api/onboarding/launchpad/logo.go
package launchpad

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"
)

var ErrInvalidLogo = errors.New("INVALID_LOGO")

var logoExtensions = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

var placeholderColors = []string{
	"#f56565", "#ed8936", "#ecc94b", "#48bb78", "#38b2ac",
	"#4299e1", "#667eea", "#9f7aea", "#ed64a6",
}

type logoFile struct {
	data        []byte
	contentType string
	ext         string
}

// decodeDataURL accepts "data:<image type>;base64,<payload>".
func decodeDataURL(raw string, maxBytes int) (*logoFile, error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data URL", ErrInvalidLogo)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload", ErrInvalidLogo)
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, fmt.Errorf("%w: payload must be base64", ErrInvalidLogo)
	}
	ext, ok := logoExtensions[strings.ToLower(contentType)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidLogo, contentType)
	}
	if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(payload)) > maxBytes {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidLogo, maxBytes)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLogo, err)
	}
	return &logoFile{data: data, contentType: strings.ToLower(contentType), ext: ext}, nil
}

// placeholderLogo renders the store initial on a colored tile.
func placeholderLogo(storeName string) *logoFile {
	name := strings.TrimSpace(storeName)
	letter := "S"
	if r, _ := utf8.DecodeRuneInString(name); r != utf8.RuneError {
		letter = strings.ToUpper(string(r))
	}
	color := placeholderColors[utf8.RuneCountInString(storeName)%len(placeholderColors)]

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200" viewBox="0 0 200 200">`+
		`<rect width="200" height="200" rx="40" fill="%s"/>`+
		`<text x="50%%" y="50%%" dominant-baseline="central" text-anchor="middle" `+
		`font-family="Arial, sans-serif" font-size="96" font-weight="bold" fill="#ffffff">%s</text></svg>`,
		color, html.EscapeString(letter))

	return &logoFile{data: []byte(svg), contentType: "image/svg+xml", ext: "svg"}
}
