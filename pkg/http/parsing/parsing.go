package parsing

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/Motmedel/http_mock_go/pkg/errors/types/empty_error"
)

// ParseRequestData reads an HTTP/1.x request message, as written on the wire.
func ParseRequestData(requestBytes []byte) (*http.Request, error) {
	if len(requestBytes) == 0 {
		return nil, motmedelErrors.NewWithTrace(empty_error.New("request data"))
	}

	reader := bufio.NewReader(bytes.NewReader(requestBytes))
	request, err := http.ReadRequest(reader)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("http read request: %w", err), requestBytes)
	}

	return request, nil
}
