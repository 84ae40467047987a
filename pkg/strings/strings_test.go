package strings

import (
	"net"
	"testing"
	"time"
)

type namedBytes []byte

func TestMakeTextualRepresentation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "nil", value: nil, expected: ""},
		{name: "string", value: "text/html", expected: "text/html"},
		{name: "int", value: 42, expected: "42"},
		{name: "int64", value: int64(-7), expected: "-7"},
		{name: "float", value: 1.5, expected: "1.5"},
		{name: "bool", value: true, expected: "true"},
		{name: "bytes", value: []byte("abc"), expected: "abc"},
		{name: "named bytes", value: namedBytes("xyz"), expected: "xyz"},
		{name: "stringer", value: net.IPv4(127, 0, 0, 1), expected: "127.0.0.1"},
		{
			name:     "time",
			value:    time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
			expected: "2020-01-02T03:04:05Z",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := MakeTextualRepresentation(testCase.value)
			if err != nil {
				t.Fatalf("make textual representation: %v", err)
			}
			if got != testCase.expected {
				t.Errorf("got %q, expected %q", got, testCase.expected)
			}
		})
	}
}
