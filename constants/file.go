package constants

// DocumentExtension is the extension expected for document-class assets.
// Other allowed extensions are still downloaded, with a warning.
const DocumentExtension = ".pdf"

// AssetExtensions is the allow-list matched against URL paths, in match order.
var AssetExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".webp", ".bmp", ".gif"}
