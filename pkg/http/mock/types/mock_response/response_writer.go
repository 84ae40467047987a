package mock_response

import (
	"fmt"
	"net/http"

	"github.com/Motmedel/http_mock_go/pkg/http/mock/types/headers"
	motmedelLogError "github.com/Motmedel/http_mock_go/pkg/log/error"
	"github.com/gabriel-vasile/mimetype"
)

// ResponseWriter lets a net/http handler write into a mock response. Header changes made after
// the status is written are not applied, as with a real connection.
type ResponseWriter struct {
	Response          *Response
	IsHeadRequest     bool
	WriteHeaderCalled bool
	WriteCalled       bool

	header http.Header
}

func (response *Response) ResponseWriter() *ResponseWriter {
	responseWriter := &ResponseWriter{
		Response: response,
		header:   response.headers.HTTPHeader(),
	}
	if response.request != nil {
		responseWriter.IsHeadRequest = response.request.Method == http.MethodHead
	}
	return responseWriter
}

func (responseWriter *ResponseWriter) Header() http.Header {
	return responseWriter.header
}

func (responseWriter *ResponseWriter) WriteHeader(statusCode int) {
	if responseWriter.WriteHeaderCalled {
		return
	}
	responseWriter.WriteHeaderCalled = true

	response := responseWriter.Response
	response.headers = headers.FromHTTPHeader(responseWriter.header)
	if err := response.WriteHead(statusCode, http.StatusText(statusCode)); err != nil {
		motmedelLogError.LogDebug(
			"The status could not be written to the mock response.",
			fmt.Errorf("write head: %w", err),
			response.Logger,
		)
	}
}

// Write writes the status on the first call, 200 unless set, sniffing Content-Type from data when
// none is set. The body of a HEAD request is discarded.
func (responseWriter *ResponseWriter) Write(data []byte) (int, error) {
	responseWriter.WriteCalled = true

	if !responseWriter.WriteHeaderCalled {
		if responseWriter.header.Get("Content-Type") == "" && len(data) > 0 {
			responseWriter.header.Set("Content-Type", mimetype.Detect(data).String())
		}
		responseWriter.WriteHeader(http.StatusOK)
	}

	if responseWriter.IsHeadRequest || len(data) == 0 {
		return len(data), nil
	}

	n, err := responseWriter.Response.Write(data)
	if err != nil {
		return n, fmt.Errorf("mock response write: %w", err)
	}

	return n, nil
}

// Flush is a no-op; every write is recorded immediately.
func (responseWriter *ResponseWriter) Flush() {}
