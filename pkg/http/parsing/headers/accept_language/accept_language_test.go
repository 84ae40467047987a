package accept_language

import (
	"errors"
	"math"
	"testing"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
)

func feq(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-6 }

func TestParseCorrectness(t *testing.T) {
	t.Parallel()

	type exp struct {
		primary string
		subtag  string
		q       float32
	}
	cases := []struct {
		name   string
		header string
		want   []exp
	}{
		{name: "single primary", header: "en", want: []exp{{"en", "", 1.0}}},
		{name: "primary with region", header: "en-US", want: []exp{{"en", "US", 1.0}}},
		{name: "multiple with qs", header: "en-US,en;q=0.9", want: []exp{{"en", "US", 1.0}, {"en", "", 0.9}}},
		{
			name:   "rfc example style",
			header: "da, en-gb;q=0.8, en;q=0.7",
			want:   []exp{{"da", "", 1.0}, {"en", "gb", 0.8}, {"en", "", 0.7}},
		},
		{name: "script and region", header: "zh-Hant-TW", want: []exp{{"zh", "Hant-TW", 1.0}}},
		{name: "wildcard", header: "*;q=0.1", want: []exp{{"*", "", 0.1}}},
		{
			name:   "spaces around params",
			header: "en ; q=1.0, fr ;q=0.5",
			want:   []exp{{"en", "", 1.0}, {"fr", "", 0.5}},
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			acceptLanguage, err := Parse([]byte(testCase.header))
			if err != nil {
				t.Fatalf("Parse error: %v (header=%q)", err, testCase.header)
			}
			if len(acceptLanguage.LanguageQs) != len(testCase.want) {
				t.Fatalf("len(langs)=%d, want %d", len(acceptLanguage.LanguageQs), len(testCase.want))
			}
			for i, want := range testCase.want {
				got := acceptLanguage.LanguageQs[i]
				if got.Tag.PrimarySubtag != want.primary || got.Tag.Subtag != want.subtag {
					t.Fatalf("lang[%d].tag=(%q-%q), want (%q-%q)", i, got.Tag.PrimarySubtag, got.Tag.Subtag, want.primary, want.subtag)
				}
				if !feq(got.Q, want.q) {
					t.Fatalf("lang[%d].q=%v, want %v", i, got.Q, want.q)
				}
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"toolongprimary", "en_US", "en;q=2"} {
		t.Run(header, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse([]byte(header)); !errors.Is(err, motmedelErrors.ErrSyntaxError) {
				t.Fatalf("expected syntax error for %q, got %v", header, err)
			}
		})
	}
}
