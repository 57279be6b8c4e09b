package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// product image filenames follow the pattern INTERNALCODE.EXT, e.g.
// HAR-000-1.png. The internal code is letters, digits and hyphens.
var imageNameRegex = regexp.MustCompile(`^([A-Z0-9][A-Z0-9-]*)\.(PNG|JPG|JPEG)$`)

// ParseImageFileName extracts the product internal code from an image
// filename. Returns an error when the name does not follow the pattern, so
// unrelated files in the Drive folder are skipped.
func ParseImageFileName(filename string) (string, error) {
	matches := imageNameRegex.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(filename)))
	if len(matches) != 3 {
		return "", fmt.Errorf("invalid image filename: expected INTERNALCODE.(png|jpg|jpeg), got %s", filename)
	}
	return matches[1], nil
}
