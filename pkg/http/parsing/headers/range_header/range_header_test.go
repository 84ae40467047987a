package range_header

import (
	"errors"
	"testing"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	motmedelHttpTypes "github.com/Motmedel/http_mock_go/pkg/http/types"
	"github.com/google/go-cmp/cmp"
)

func ptr(v int64) *int64 { return &v }

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected *motmedelHttpTypes.Range
	}{
		{
			name:  "closed range",
			input: "bytes=0-499",
			expected: &motmedelHttpTypes.Range{
				Raw: "bytes=0-499", Unit: "bytes",
				Specs: []*motmedelHttpTypes.RangeSpec{{FirstPos: ptr(0), LastPos: ptr(499)}},
			},
		},
		{
			name:  "open and suffix",
			input: "bytes=9500-, -500",
			expected: &motmedelHttpTypes.Range{
				Raw: "bytes=9500-, -500", Unit: "bytes",
				Specs: []*motmedelHttpTypes.RangeSpec{
					{FirstPos: ptr(9500)},
					{LastPos: ptr(500)},
				},
			},
		},
		{
			name:  "other unit",
			input: "items=1-2",
			expected: &motmedelHttpTypes.Range{
				Raw: "items=1-2", Unit: "items",
				Specs: []*motmedelHttpTypes.RangeSpec{{FirstPos: ptr(1), LastPos: ptr(2)}},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse([]byte(testCase.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(testCase.expected, got); diff != "" {
				t.Errorf("range mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"bytes", "bytes=", "bytes=a-b", "bytes=--1", "=0-1"} {
		t.Run(header, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse([]byte(header)); !errors.Is(err, motmedelErrors.ErrSyntaxError) {
				t.Fatalf("expected syntax error for %q, got %v", header, err)
			}
		})
	}
}
