package negotiation

import (
	"errors"
	"testing"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNegotiatorMediaTypes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		header   string
		offers   []string
		expected []string
	}{
		{
			name:     "absent header accepts every offer in order",
			offers:   []string{"text/html", "application/json"},
			expected: []string{"text/html", "application/json"},
		},
		{
			name:     "quality ordering",
			header:   "application/json, text/html;q=0.5",
			offers:   []string{"text/html", "application/json"},
			expected: []string{"application/json", "text/html"},
		},
		{
			name:     "specific range beats wildcard",
			header:   "text/*;q=0.5, text/html",
			offers:   []string{"text/plain", "text/html"},
			expected: []string{"text/html", "text/plain"},
		},
		{
			name:     "zero quality excludes",
			header:   "text/html;q=0, */*",
			offers:   []string{"text/html", "image/png"},
			expected: []string{"image/png"},
		},
		{
			name:   "parameters must match",
			header: "text/html;level=1",
			offers: []string{"text/html"},
		},
		{
			name:     "parameter match",
			header:   "text/html;level=1",
			offers:   []string{"text/html;level=1"},
			expected: []string{"text/html;level=1"},
		},
		{
			name:     "header order breaks ties",
			header:   "application/json, text/html",
			offers:   []string{"text/html", "application/json"},
			expected: []string{"application/json", "text/html"},
		},
		{
			name:     "no offers lists preferences",
			header:   "text/html;q=0.5, application/json, image/png;q=0",
			expected: []string{"application/json", "text/html"},
		},
		{
			name:   "invalid offer is ignored",
			header: "*/*",
			offers: []string{"html"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			negotiator := &Negotiator{Accept: testCase.header}
			got, err := negotiator.MediaTypes(testCase.offers...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(testCase.expected, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("media types mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestNegotiatorEncodings(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		header   string
		offers   []string
		expected []string
	}{
		{
			name:   "absent header only allows identity",
			offers: []string{"gzip"},
		},
		{
			name:     "absent header with identity offer",
			offers:   []string{"gzip", "identity"},
			expected: []string{"identity"},
		},
		{
			name:     "identity gets the lowest quality",
			header:   "gzip, br;q=0.8",
			offers:   []string{"identity", "br", "gzip"},
			expected: []string{"gzip", "br", "identity"},
		},
		{
			name:     "wildcard",
			header:   "*",
			offers:   []string{"br", "gzip"},
			expected: []string{"br", "gzip"},
		},
		{
			name:   "wildcard exclusion removes identity",
			header: "*;q=0",
			offers: []string{"identity"},
		},
		{
			name:     "no offers",
			header:   "deflate;q=0.5, gzip",
			expected: []string{"gzip", "deflate", "identity"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			negotiator := &Negotiator{AcceptEncoding: testCase.header}
			got, err := negotiator.Encodings(testCase.offers...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(testCase.expected, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("encodings mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestNegotiatorCharsets(t *testing.T) {
	t.Parallel()

	negotiator := &Negotiator{AcceptCharset: "utf-8, iso-8859-1;q=0.2, utf-7;q=0.5"}
	got, err := negotiator.Charsets("iso-8859-1", "utf-7", "UTF-8", "ascii")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"UTF-8", "utf-7", "iso-8859-1"}, got); diff != "" {
		t.Errorf("charsets mismatch (-expected +got):\n%s", diff)
	}

	absent := &Negotiator{}
	got, err = absent.Charsets("utf-8", "ascii")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"utf-8", "ascii"}, got); diff != "" {
		t.Errorf("charsets mismatch (-expected +got):\n%s", diff)
	}
}

func TestNegotiatorLanguages(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		header   string
		offers   []string
		expected []string
	}{
		{
			name:     "absent header",
			offers:   []string{"en", "sv"},
			expected: []string{"en", "sv"},
		},
		{
			name:     "prefix match",
			header:   "en-US, fr;q=0.5",
			offers:   []string{"fr", "en"},
			expected: []string{"en", "fr"},
		},
		{
			name:     "offer with region matches primary",
			header:   "en",
			offers:   []string{"en-GB"},
			expected: []string{"en-GB"},
		},
		{
			name:     "no offers",
			header:   "da, en-gb;q=0.8, en;q=0.7",
			expected: []string{"da", "en-gb", "en"},
		},
		{
			name:   "no match",
			header: "sv",
			offers: []string{"de"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			negotiator := &Negotiator{AcceptLanguage: testCase.header}
			got, err := negotiator.Languages(testCase.offers...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(testCase.expected, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("languages mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestNegotiatorMalformed(t *testing.T) {
	t.Parallel()

	negotiator := &Negotiator{Accept: "text"}
	if _, err := negotiator.MediaTypes("text/html"); !errors.Is(err, motmedelErrors.ErrSyntaxError) {
		t.Fatalf("expected syntax error, got %v", err)
	}
}
