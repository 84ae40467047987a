package types

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

type MediaType struct {
	Type       string
	Subtype    string
	Parameters [][2]string
}

func (mediaType *MediaType) GetFullType(normalize bool) string {
	typeValue := mediaType.Type
	if typeValue == "" {
		typeValue = "*"
	}
	subtypeValue := mediaType.Subtype
	if subtypeValue == "" {
		subtypeValue = "*"
	}

	fullType := fmt.Sprintf("%s/%s", typeValue, subtypeValue)
	if normalize {
		return strings.ToLower(fullType)
	}
	return fullType
}

func (mediaType *MediaType) GetParametersMap(normalize bool) map[string]string {
	if len(mediaType.Parameters) == 0 {
		return nil
	}

	m := make(map[string]string)

	for _, parameter := range mediaType.Parameters {
		key := parameter[0]
		if normalize {
			key = strings.ToLower(key)
		}

		if _, ok := m[key]; !ok {
			m[key] = parameter[1]
		}
	}

	return m
}

// GetStructuredSyntaxName returns the suffix of a subtype such as "json" in "vnd.api+json".
func (mediaType *MediaType) GetStructuredSyntaxName(normalize bool) string {
	_, suffix, found := strings.Cut(mediaType.Subtype, "+")
	if !found {
		return ""
	}
	if normalize {
		return strings.ToLower(suffix)
	}
	return suffix
}

type ContentType struct {
	MediaType
}

type MediaRange struct {
	MediaType
	Weight float32
}

type Accept struct {
	Raw         string
	MediaRanges []*MediaRange
}

type Encoding struct {
	Coding       string
	QualityValue float32
}

type AcceptEncoding struct {
	Raw       string
	Encodings []*Encoding
}

type Charset struct {
	Charset      string
	QualityValue float32
}

type AcceptCharset struct {
	Raw      string
	Charsets []*Charset
}

type LanguageTag struct {
	PrimarySubtag string
	Subtag        string
}

func (languageTag *LanguageTag) String() string {
	if languageTag.Subtag == "" {
		return languageTag.PrimarySubtag
	}
	return languageTag.PrimarySubtag + "-" + languageTag.Subtag
}

type LanguageQ struct {
	Tag *LanguageTag
	Q   float32
}

type AcceptLanguage struct {
	Raw        string
	LanguageQs []*LanguageQ
}

// ByteRange is an inclusive range of byte offsets.
type ByteRange struct {
	Start int64
	End   int64
}

// Ranges is the outcome of evaluating a Range header against a representation size.
type Ranges struct {
	Type   string
	Ranges []*ByteRange
}

type RangeSpec struct {
	// FirstPos is nil for suffix ranges.
	FirstPos *int64
	// LastPos is nil for open-ended ranges and holds the suffix length for suffix ranges.
	LastPos *int64
}

type Range struct {
	Raw   string
	Unit  string
	Specs []*RangeSpec
}

// CookieOptions mirrors the attributes a framework cookie call accepts.
type CookieOptions struct {
	Domain      string
	Path        string
	Expires     *time.Time
	MaxAge      int
	HttpOnly    bool
	Secure      bool
	Signed      bool
	Partitioned bool
	SameSite    http.SameSite
}

func (options *CookieOptions) Clone() *CookieOptions {
	if options == nil {
		return nil
	}
	clone := *options
	if options.Expires != nil {
		expires := *options.Expires
		clone.Expires = &expires
	}
	return &clone
}

// Merge returns a copy of options with the non-zero fields of overlay laid over it.
func (options *CookieOptions) Merge(overlay *CookieOptions) *CookieOptions {
	merged := options.Clone()
	if merged == nil {
		merged = &CookieOptions{}
	}
	if overlay == nil {
		return merged
	}

	if overlay.Domain != "" {
		merged.Domain = overlay.Domain
	}
	if overlay.Path != "" {
		merged.Path = overlay.Path
	}
	if overlay.Expires != nil {
		expires := *overlay.Expires
		merged.Expires = &expires
	}
	if overlay.MaxAge != 0 {
		merged.MaxAge = overlay.MaxAge
	}
	if overlay.SameSite != 0 {
		merged.SameSite = overlay.SameSite
	}
	merged.HttpOnly = merged.HttpOnly || overlay.HttpOnly
	merged.Secure = merged.Secure || overlay.Secure
	merged.Signed = merged.Signed || overlay.Signed
	merged.Partitioned = merged.Partitioned || overlay.Partitioned

	return merged
}

type Cookie struct {
	Value   string
	Options *CookieOptions
}

// HttpCookie converts the cookie to its net/http form for serialization.
func (cookie *Cookie) HttpCookie(name string) *http.Cookie {
	httpCookie := &http.Cookie{Name: name, Value: cookie.Value}

	options := cookie.Options
	if options == nil {
		return httpCookie
	}

	httpCookie.Domain = options.Domain
	httpCookie.Path = options.Path
	httpCookie.MaxAge = options.MaxAge
	httpCookie.HttpOnly = options.HttpOnly
	httpCookie.Secure = options.Secure
	httpCookie.Partitioned = options.Partitioned
	httpCookie.SameSite = options.SameSite
	if options.Expires != nil {
		httpCookie.Expires = *options.Expires
	}

	return httpCookie
}
