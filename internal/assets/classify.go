package assets

import (
	"strings"

	"github.com/joseph-ayodele/merchant-report/constants"
)

// IsValidURL accepts non-empty cells other than the "-" placeholder that
// start with an http:// or https:// scheme.
func IsValidURL(s string) bool {
	if strings.TrimSpace(s) == "" || s == "-" {
		return false
	}
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ExtensionFromURL matches the URL path, query string removed, against the
// allow-list case-insensitively. The returned extension is lower case.
func ExtensionFromURL(rawURL string) (string, bool) {
	lower := strings.ToLower(rawURL)
	if i := strings.IndexByte(lower, '?'); i >= 0 {
		lower = lower[:i]
	}
	for _, ext := range constants.AssetExtensions {
		if strings.HasSuffix(lower, ext) {
			return ext, true
		}
	}
	return "", false
}

// FileName builds "{identifier}_{header}{ext}". Path separators in the
// identifier are replaced so the file stays inside its staging directory.
func FileName(identifier, header, ext string) string {
	identifier = strings.NewReplacer("/", "_", `\`, "_").Replace(identifier)
	return identifier + "_" + header + ext
}
