// Package mime maps file extensions and short aliases to media types.
package mime

import (
	"mime"
	"path"
	"strings"
)

const DefaultType = "application/octet-stream"

var extensionTypes = map[string]string{
	"aac":         "audio/aac",
	"avif":        "image/avif",
	"bin":         "application/octet-stream",
	"bmp":         "image/bmp",
	"css":         "text/css",
	"csv":         "text/csv",
	"form":        "application/x-www-form-urlencoded",
	"gif":         "image/gif",
	"gz":          "application/gzip",
	"htm":         "text/html",
	"html":        "text/html",
	"ico":         "image/vnd.microsoft.icon",
	"ics":         "text/calendar",
	"jpeg":        "image/jpeg",
	"jpg":         "image/jpeg",
	"js":          "application/javascript",
	"json":        "application/json",
	"jsonld":      "application/ld+json",
	"map":         "application/json",
	"md":          "text/markdown",
	"mjs":         "application/javascript",
	"mp3":         "audio/mpeg",
	"mp4":         "video/mp4",
	"mpeg":        "video/mpeg",
	"oga":         "audio/ogg",
	"ogv":         "video/ogg",
	"otf":         "font/otf",
	"pdf":         "application/pdf",
	"png":         "image/png",
	"rtf":         "application/rtf",
	"svg":         "image/svg+xml",
	"tar":         "application/x-tar",
	"text":        "text/plain",
	"tif":         "image/tiff",
	"tiff":        "image/tiff",
	"ttf":         "font/ttf",
	"txt":         "text/plain",
	"wasm":        "application/wasm",
	"wav":         "audio/wav",
	"weba":        "audio/webm",
	"webm":        "video/webm",
	"webmanifest": "application/manifest+json",
	"webp":        "image/webp",
	"woff":        "font/woff",
	"woff2":       "font/woff2",
	"xhtml":       "application/xhtml+xml",
	"xml":         "application/xml",
	"yaml":        "text/yaml",
	"yml":         "text/yaml",
	"zip":         "application/zip",
	"zst":         "application/zstd",
}

// systemLookup consults the registered and system extension tables, dropping parameters such as
// charset from the result.
func systemLookup(extension string) (string, bool) {
	value := mime.TypeByExtension("." + extension)
	if value == "" {
		return "", false
	}

	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return "", false
	}
	return mediaType, true
}

// Lookup returns the media type for an extension, a file name or a path. The leading dot is
// optional. Extensions missing from the table are looked up in the system tables.
func Lookup(token string) (string, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return "", false
	}

	extension := strings.TrimPrefix(path.Ext("x."+token), ".")
	if extension == "" {
		return "", false
	}

	if mediaType, ok := extensionTypes[extension]; ok {
		return mediaType, true
	}
	return systemLookup(extension)
}

// Normalize turns a type-matching token into a media range: full types are returned as given,
// "+suffix" becomes "*/*+suffix", "urlencoded" and "multipart" are aliases, anything else is
// looked up as an extension.
func Normalize(token string) (string, bool) {
	switch token {
	case "":
		return "", false
	case "urlencoded":
		return "application/x-www-form-urlencoded", true
	case "multipart":
		return "multipart/*", true
	}

	if strings.HasPrefix(token, "+") {
		return "*/*" + token, true
	}
	if strings.Contains(token, "/") {
		return token, true
	}

	return Lookup(token)
}

// ContentType returns the value to store in a Content-Type field for a token. Tokens without a
// slash are looked up, falling back to DefaultType.
func ContentType(token string) string {
	if strings.Contains(token, "/") {
		return token
	}
	if mediaType, ok := Lookup(token); ok {
		return mediaType
	}
	return DefaultType
}
