package accept_encoding

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
		coding string
		q      float32
	}
	cases := []struct {
		name   string
		header string
		want   []exp
	}{
		{name: "single coding", header: "gzip", want: []exp{{"gzip", 1.0}}},
		{name: "wildcard", header: "*", want: []exp{{"*", 1.0}}},
		{name: "list", header: "gzip, deflate, br", want: []exp{{"gzip", 1.0}, {"deflate", 1.0}, {"br", 1.0}}},
		{
			name:   "weights",
			header: "gzip;q=1.0, identity; q=0.5, *;q=0",
			want:   []exp{{"gzip", 1.0}, {"identity", 0.5}, {"*", 0}},
		},
		{name: "three digit weight", header: "zstd;q=0.125", want: []exp{{"zstd", 0.125}}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			acceptEncoding, err := Parse([]byte(testCase.header))
			if err != nil {
				t.Fatalf("Parse error: %v (header=%q)", err, testCase.header)
			}
			if acceptEncoding.Raw != testCase.header {
				t.Fatalf("raw = %q, want %q", acceptEncoding.Raw, testCase.header)
			}
			if len(acceptEncoding.Encodings) != len(testCase.want) {
				t.Fatalf("len(encodings)=%d, want %d", len(acceptEncoding.Encodings), len(testCase.want))
			}
			for i, want := range testCase.want {
				got := acceptEncoding.Encodings[i]
				if got.Coding != want.coding || !feq(got.QualityValue, want.q) {
					t.Fatalf("encoding[%d] = (%q, %v), want (%q, %v)", i, got.Coding, got.QualityValue, want.coding, want.q)
				}
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	acceptEncoding, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(acceptEncoding.Encodings) != 0 {
		t.Fatalf("expected no encodings, got %d", len(acceptEncoding.Encodings))
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"gzip;q=1.5", "gzip;q=", "gzip deflate", "gzip;level=1"} {
		t.Run(header, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse([]byte(header)); !errors.Is(err, motmedelErrors.ErrSyntaxError) {
				t.Fatalf("expected syntax error for %q, got %v", header, err)
			}
		})
	}
}
