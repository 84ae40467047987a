// Package negotiation ranks server offers against the Accept, Accept-Encoding, Accept-Charset and
// Accept-Language fields of a request.
//
// Offers are ordered by quality value, then by how specifically the matching field element names
// them, then by the position of that element in the field, then by their own position. Elements
// with a quality value of 0 exclude what they match.
package negotiation

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Motmedel/http_mock_go/pkg/http/parsing/headers/accept"
	"github.com/Motmedel/http_mock_go/pkg/http/parsing/headers/accept_charset"
	"github.com/Motmedel/http_mock_go/pkg/http/parsing/headers/accept_encoding"
	"github.com/Motmedel/http_mock_go/pkg/http/parsing/headers/accept_language"
	"github.com/Motmedel/http_mock_go/pkg/http/parsing/headers/content_type"
	motmedelHttpTypes "github.com/Motmedel/http_mock_go/pkg/http/types"
)

const AcceptContentIdentity = "identity"

type preference struct {
	value string
	q     float32
	s     int
	o     int
	i     int
}

func comparePreferences(a, b *preference) int {
	if a.q != b.q {
		if a.q > b.q {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(b.s, a.s); c != 0 {
		return c
	}
	if c := cmp.Compare(a.o, b.o); c != 0 {
		return c
	}
	return cmp.Compare(a.i, b.i)
}

func values(preferences []*preference) []string {
	slices.SortStableFunc(preferences, comparePreferences)

	result := make([]string, 0, len(preferences))
	for _, p := range preferences {
		result = append(result, p.value)
	}
	return result
}

// rank orders offers by the field elements in specs. specify reports the specificity with which
// an element matches an offer. Without offers the acceptable elements themselves are ranked.
func rank[S any](
	specs []S,
	quality func(S) float32,
	full func(S) string,
	offers []string,
	specify func(offer string, spec S) (int, bool),
) []string {
	var preferences []*preference

	if len(offers) == 0 {
		for index, spec := range specs {
			if q := quality(spec); q > 0 {
				preferences = append(preferences, &preference{value: full(spec), q: q, o: index, i: index})
			}
		}
		return values(preferences)
	}

	for offerIndex, offer := range offers {
		best := &preference{value: offer, o: -1, i: offerIndex}

		for specIndex, spec := range specs {
			s, ok := specify(offer, spec)
			if !ok {
				continue
			}

			q := quality(spec)
			if s > best.s || (s == best.s && q > best.q) || (s == best.s && q == best.q && specIndex > best.o) {
				best.s, best.q, best.o = s, q, specIndex
			}
		}

		if best.q > 0 {
			preferences = append(preferences, best)
		}
	}

	return values(preferences)
}

func specifyMediaType(offer string, mediaRange *motmedelHttpTypes.MediaRange) (int, bool) {
	offerType, err := content_type.Parse([]byte(offer))
	if err != nil {
		return 0, false
	}

	s := 0

	switch {
	case strings.EqualFold(mediaRange.Type, offerType.Type):
		s |= 4
	case mediaRange.Type != "*":
		return 0, false
	}

	switch {
	case strings.EqualFold(mediaRange.Subtype, offerType.Subtype):
		s |= 2
	case mediaRange.Subtype != "*":
		return 0, false
	}

	rangeParameters := mediaRange.GetParametersMap(true)
	if len(rangeParameters) > 0 {
		offerParameters := offerType.GetParametersMap(true)
		for key, value := range rangeParameters {
			if value != "*" && !strings.EqualFold(value, offerParameters[key]) {
				return 0, false
			}
		}
		s |= 1
	}

	return s, true
}

// MediaTypes returns the acceptable offers in order of preference. A nil accept value is treated
// as "*/*".
func MediaTypes(acceptValue *motmedelHttpTypes.Accept, offers ...string) []string {
	var mediaRanges []*motmedelHttpTypes.MediaRange
	if acceptValue == nil {
		mediaRanges = []*motmedelHttpTypes.MediaRange{
			{MediaType: motmedelHttpTypes.MediaType{Type: "*", Subtype: "*"}, Weight: 1},
		}
	} else {
		for _, mediaRange := range acceptValue.MediaRanges {
			if mediaRange != nil {
				mediaRanges = append(mediaRanges, mediaRange)
			}
		}
	}

	return rank(
		mediaRanges,
		func(mediaRange *motmedelHttpTypes.MediaRange) float32 { return mediaRange.Weight },
		func(mediaRange *motmedelHttpTypes.MediaRange) string { return mediaRange.GetFullType(false) },
		offers,
		specifyMediaType,
	)
}

func specifyToken(offer string, token string) (int, bool) {
	if strings.EqualFold(token, offer) {
		return 1, true
	}
	if token != "*" {
		return 0, false
	}
	return 0, true
}

type tokenSpec struct {
	token string
	q     float32
}

func tokenQuality(spec *tokenSpec) float32 { return spec.q }
func tokenFull(spec *tokenSpec) string     { return spec.token }
func tokenSpecify(offer string, spec *tokenSpec) (int, bool) {
	return specifyToken(offer, spec.token)
}

// Encodings returns the acceptable content codings in order of preference. "identity" is
// acceptable unless excluded, with the lowest quality value present in the field. A nil value
// makes only "identity" acceptable.
func Encodings(acceptEncoding *motmedelHttpTypes.AcceptEncoding, offers ...string) []string {
	var specs []*tokenSpec

	hasIdentity := false
	var minQuality float32 = 1

	if acceptEncoding != nil {
		for _, encoding := range acceptEncoding.Encodings {
			if encoding == nil {
				continue
			}
			specs = append(specs, &tokenSpec{token: encoding.Coding, q: encoding.QualityValue})

			if _, ok := specifyToken(AcceptContentIdentity, encoding.Coding); ok {
				hasIdentity = true
			}
			if encoding.QualityValue > 0 {
				minQuality = min(minQuality, encoding.QualityValue)
			}
		}
	}

	if !hasIdentity {
		specs = append(specs, &tokenSpec{token: AcceptContentIdentity, q: minQuality})
	}

	return rank(specs, tokenQuality, tokenFull, offers, tokenSpecify)
}

// Charsets returns the acceptable charsets in order of preference. A nil value is treated as "*".
func Charsets(acceptCharset *motmedelHttpTypes.AcceptCharset, offers ...string) []string {
	var specs []*tokenSpec
	if acceptCharset == nil {
		specs = []*tokenSpec{{token: "*", q: 1}}
	} else {
		for _, charset := range acceptCharset.Charsets {
			if charset != nil {
				specs = append(specs, &tokenSpec{token: charset.Charset, q: charset.QualityValue})
			}
		}
	}

	return rank(specs, tokenQuality, tokenFull, offers, tokenSpecify)
}

func specifyLanguage(offer string, languageQ *motmedelHttpTypes.LanguageQ) (int, bool) {
	offer = strings.TrimSpace(offer)
	if offer == "" {
		return 0, false
	}
	offerPrefix, _, _ := strings.Cut(offer, "-")

	full := languageQ.Tag.String()
	switch {
	case strings.EqualFold(full, offer):
		return 4, true
	case strings.EqualFold(languageQ.Tag.PrimarySubtag, offer):
		return 2, true
	case strings.EqualFold(full, offerPrefix):
		return 1, true
	case full == "*":
		return 0, true
	}

	return 0, false
}

// Languages returns the acceptable language tags in order of preference. A nil value is treated
// as "*".
func Languages(acceptLanguage *motmedelHttpTypes.AcceptLanguage, offers ...string) []string {
	var languageQs []*motmedelHttpTypes.LanguageQ
	if acceptLanguage == nil {
		languageQs = []*motmedelHttpTypes.LanguageQ{
			{Tag: &motmedelHttpTypes.LanguageTag{PrimarySubtag: "*"}, Q: 1},
		}
	} else {
		for _, languageQ := range acceptLanguage.LanguageQs {
			if languageQ != nil && languageQ.Tag != nil {
				languageQs = append(languageQs, languageQ)
			}
		}
	}

	return rank(
		languageQs,
		func(languageQ *motmedelHttpTypes.LanguageQ) float32 { return languageQ.Q },
		func(languageQ *motmedelHttpTypes.LanguageQ) string { return languageQ.Tag.String() },
		offers,
		specifyLanguage,
	)
}

// Negotiator evaluates raw field values. An empty value means the field is absent.
type Negotiator struct {
	Accept         string
	AcceptEncoding string
	AcceptCharset  string
	AcceptLanguage string
}

func (negotiator *Negotiator) MediaTypes(offers ...string) ([]string, error) {
	var acceptValue *motmedelHttpTypes.Accept
	if strings.TrimSpace(negotiator.Accept) != "" {
		var err error
		acceptValue, err = accept.Parse([]byte(negotiator.Accept))
		if err != nil {
			return nil, fmt.Errorf("accept parse: %w", err)
		}
	}

	return MediaTypes(acceptValue, offers...), nil
}

func (negotiator *Negotiator) Encodings(offers ...string) ([]string, error) {
	var acceptEncoding *motmedelHttpTypes.AcceptEncoding
	if strings.TrimSpace(negotiator.AcceptEncoding) != "" {
		var err error
		acceptEncoding, err = accept_encoding.Parse([]byte(negotiator.AcceptEncoding))
		if err != nil {
			return nil, fmt.Errorf("accept encoding parse: %w", err)
		}
	}

	return Encodings(acceptEncoding, offers...), nil
}

func (negotiator *Negotiator) Charsets(offers ...string) ([]string, error) {
	var acceptCharset *motmedelHttpTypes.AcceptCharset
	if strings.TrimSpace(negotiator.AcceptCharset) != "" {
		var err error
		acceptCharset, err = accept_charset.Parse([]byte(negotiator.AcceptCharset))
		if err != nil {
			return nil, fmt.Errorf("accept charset parse: %w", err)
		}
	}

	return Charsets(acceptCharset, offers...), nil
}

func (negotiator *Negotiator) Languages(offers ...string) ([]string, error) {
	var acceptLanguage *motmedelHttpTypes.AcceptLanguage
	if strings.TrimSpace(negotiator.AcceptLanguage) != "" {
		var err error
		acceptLanguage, err = accept_language.Parse([]byte(negotiator.AcceptLanguage))
		if err != nil {
			return nil, fmt.Errorf("accept language parse: %w", err)
		}
	}

	return Languages(acceptLanguage, offers...), nil
}
