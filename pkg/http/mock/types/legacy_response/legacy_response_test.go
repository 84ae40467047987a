package legacy_response

import (
	"testing"

	mockErrors "github.com/Motmedel/http_mock_go/pkg/http/mock/errors"
	motmedelTestingCmp "github.com/Motmedel/http_mock_go/pkg/testing/cmp"
)

func TestLifecycle(t *testing.T) {
	t.Parallel()

	response := New()
	if response.GetStatusCode() != StatusUnset {
		t.Fatalf("status code = %d, expected it to be unset", response.GetStatusCode())
	}

	if err := response.SetHeader("Content-Type", "text/plain"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := response.Send("hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.GetStatusCode() != 200 {
		t.Errorf("status code = %d, expected send to set 200", response.GetStatusCode())
	}
	if err := response.WriteHead(201, map[string]string{"X-Test": "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := response.End(" world"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !response.IsEndCalled() {
		t.Error("expected end to be called")
	}
	if response.GetStatusCode() != 201 || response.StatusCode != 201 {
		t.Errorf("status code = %d", response.GetStatusCode())
	}
	if response.GetData() != "hello world" {
		t.Errorf("data = %q", response.GetData())
	}
	motmedelTestingCmp.Diff(t, map[string]string{"content-type": "text/plain", "x-test": "1"}, response.GetHeaders())
}

func TestAfterEnd(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		call func(*Response) error
	}{
		{name: "write head", call: func(response *Response) error { return response.WriteHead(200, nil) }},
		{name: "set header", call: func(response *Response) error { return response.SetHeader("X", "1") }},
		{name: "send", call: func(response *Response) error { return response.Send("x") }},
		{name: "end", call: func(response *Response) error { return response.End() }},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			response := New()
			if err := response.End(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			err := testCase.call(response)
			motmedelTestingCmp.CompareErrIs(t, err, mockErrors.ErrEndAlreadyCalled)
			if err.Error() != "The end() method has already been called." {
				t.Errorf("message = %q", err.Error())
			}
		})
	}
}
