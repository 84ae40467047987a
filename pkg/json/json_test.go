package json

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "empty object", input: map[string]any{}, expected: "{}"},
		{name: "object", input: map[string]any{"hello": "there"}, expected: `{"hello":"there"}`},
		{name: "false", input: false, expected: "false"},
		{name: "null", input: nil, expected: "null"},
		{name: "number", input: 400, expected: "400"},
		{name: "no html escaping", input: "<b>&</b>", expected: `"<b>&</b>"`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := Stringify(testCase.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != testCase.expected {
				t.Errorf("Stringify() = %q, want %q", got, testCase.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	got, err := Parse([]byte(`{"name":"Bob Dog","age":42}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "Bob Dog", "age": float64(42)}, got); diff != "" {
		t.Errorf("mismatch (-expected +got):\n%s", diff)
	}

	if _, err := Parse([]byte("{")); err == nil {
		t.Fatal("expected an error")
	}
}

func TestDecodeJson(t *testing.T) {
	t.Parallel()

	type person struct {
		Name string `json:"name"`
	}

	got, err := DecodeJson[person](strings.NewReader(`{"name":"Bob"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Bob" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestObjectToMap(t *testing.T) {
	t.Parallel()

	got, err := ObjectToMap(struct {
		ID int `json:"id"`
	}{ID: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"id": float64(42)}, got); diff != "" {
		t.Errorf("mismatch (-expected +got):\n%s", diff)
	}
}
