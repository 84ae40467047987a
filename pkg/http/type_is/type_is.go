// Package type_is matches a Content-Type value against candidate media types.
package type_is

import (
	"strings"

	"github.com/Motmedel/http_mock_go/pkg/http/mime"
	"github.com/Motmedel/http_mock_go/pkg/http/parsing/headers/content_type"
	motmedelHttpTypes "github.com/Motmedel/http_mock_go/pkg/http/types"
)

func parseActual(contentType string) (*motmedelHttpTypes.MediaType, bool) {
	parsed, err := content_type.Parse([]byte(contentType))
	if err != nil || parsed == nil {
		return nil, false
	}
	return &parsed.MediaType, true
}

func matchMediaType(expected string, actual *motmedelHttpTypes.MediaType) bool {
	expectedType, expectedSubtype, ok := strings.Cut(strings.ToLower(expected), "/")
	if !ok || strings.Contains(expectedSubtype, "/") {
		return false
	}

	if expectedType != "*" && expectedType != strings.ToLower(actual.Type) {
		return false
	}

	if suffix, found := strings.CutPrefix(expectedSubtype, "*+"); found {
		return suffix != "" && actual.GetStructuredSyntaxName(true) == suffix
	}

	return expectedSubtype == "*" || expectedSubtype == strings.ToLower(actual.Subtype)
}

// Match reports whether the actual type is covered by the expected media range. The expected
// subtype may be "*", or "*+suffix" to match on a structured syntax suffix.
func Match(expected, actual string) bool {
	actualMediaType, ok := parseActual(actual)
	if !ok {
		return false
	}
	return matchMediaType(expected, actualMediaType)
}

// Is returns the first candidate matching contentType. Wildcard and "+suffix" candidates yield the
// actual type instead of the candidate. Without candidates the normalized actual type is returned.
func Is(contentType string, types ...string) (string, bool) {
	actualMediaType, ok := parseActual(contentType)
	if !ok {
		return "", false
	}
	actual := actualMediaType.GetFullType(true)

	if len(types) == 0 {
		return actual, true
	}

	for _, candidate := range types {
		expected, ok := mime.Normalize(candidate)
		if !ok || !matchMediaType(expected, actualMediaType) {
			continue
		}

		if strings.HasPrefix(candidate, "+") || strings.Contains(candidate, "*") {
			return actual, true
		}
		return candidate, true
	}

	return "", false
}
