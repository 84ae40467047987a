package mock_request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"sync"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	motmedelHttpContext "github.com/Motmedel/http_mock_go/pkg/http/context"
	motmedelJson "github.com/Motmedel/http_mock_go/pkg/json"
	motmedelStrings "github.com/Motmedel/http_mock_go/pkg/strings"
)

const (
	EventData          = "data"
	EventEnd           = "end"
	EventError         = "error"
	EventClose         = "close"
	EventAsyncIterator = "async_iterator"
)

var ErrUnknownStreamError = errors.New("unknown stream error")

func chunkFromAny(value any) []byte {
	switch typedValue := value.(type) {
	case nil:
		return []byte{}
	case []byte:
		return typedValue
	case string:
		return []byte(typedValue)
	}

	if data, ok := motmedelStrings.ByteSliceFromAny(value); ok {
		return data
	}

	text, err := motmedelStrings.MakeTextualRepresentation(value)
	if err != nil {
		return []byte(fmt.Sprint(value))
	}
	return []byte(text)
}

func errorFromAny(value any) error {
	switch typedValue := value.(type) {
	case error:
		return typedValue
	case nil:
		return ErrUnknownStreamError
	default:
		return fmt.Errorf("%w: %v", ErrUnknownStreamError, typedValue)
	}
}

// Send emits data as one body chunk followed by "end". Strings and byte slices are sent as is,
// nil as an empty chunk, and any other value as its JSON text.
func (request *Request) Send(data any) error {
	var chunk []byte

	switch typedData := data.(type) {
	case nil:
		chunk = []byte{}
	case []byte:
		chunk = typedData
	case string:
		chunk = []byte(typedData)
	default:
		text, err := motmedelJson.Stringify(typedData)
		if err != nil {
			return fmt.Errorf("json stringify: %w", err)
		}
		chunk = []byte(text)
	}

	request.Emit(EventData, chunk)
	request.Emit(EventEnd)

	return nil
}

type bodyStream struct {
	mu     sync.Mutex
	chunks [][]byte
	ended  bool
	closed bool
	err    error
	notify chan struct{}
}

func (stream *bodyStream) signal() {
	select {
	case stream.notify <- struct{}{}:
	default:
	}
}

func (stream *bodyStream) onData(args ...any) {
	stream.mu.Lock()
	defer stream.mu.Unlock()

	if stream.ended || stream.closed || stream.err != nil {
		return
	}

	var value any
	if len(args) > 0 {
		value = args[0]
	}
	stream.chunks = append(stream.chunks, chunkFromAny(value))
	stream.signal()
}

func (stream *bodyStream) onEnd(...any) {
	stream.mu.Lock()
	defer stream.mu.Unlock()

	if stream.ended || stream.closed || stream.err != nil {
		return
	}
	stream.ended = true
	stream.signal()
}

func (stream *bodyStream) onClose(...any) {
	stream.mu.Lock()
	defer stream.mu.Unlock()

	if stream.closed || stream.err != nil {
		return
	}
	stream.closed = true
	stream.signal()
}

func (stream *bodyStream) onError(args ...any) {
	stream.mu.Lock()
	defer stream.mu.Unlock()

	if stream.closed || stream.err != nil {
		return
	}

	var value any
	if len(args) > 0 {
		value = args[0]
	}
	stream.err = errorFromAny(value)
	stream.signal()
}

// next returns the next chunk. An error takes precedence over buffered chunks and "close" discards
// them, while "end" lets them drain first.
func (stream *bodyStream) next(ctx context.Context) (chunk []byte, more bool, err error) {
	for {
		stream.mu.Lock()
		switch {
		case stream.err != nil:
			err = stream.err
			stream.mu.Unlock()
			return nil, false, err
		case stream.closed:
			stream.mu.Unlock()
			return nil, false, nil
		case len(stream.chunks) > 0:
			chunk = stream.chunks[0]
			stream.chunks = stream.chunks[1:]
			stream.mu.Unlock()
			return chunk, true, nil
		case stream.ended:
			stream.mu.Unlock()
			return nil, false, nil
		}
		stream.mu.Unlock()

		select {
		case <-stream.notify:
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}
}

func (request *Request) isStreamDone() bool {
	request.streamMu.Lock()
	defer request.streamMu.Unlock()

	return request.streamDone
}

func (request *Request) markStreamDone() {
	request.streamMu.Lock()
	defer request.streamMu.Unlock()

	request.streamDone = true
}

// Chunks returns the lazy body sequence. Iterating it subscribes to "data", "end", "close" and
// "error", emits "async_iterator" and then blocks until the next chunk or terminal event. Events
// emitted before iteration starts are not observed.
//
// The sequence is single-pass: once a traversal has seen "end", "close" or an error, later
// traversals yield nothing. Cancelling ctx ends the current traversal with the context's error.
func (request *Request) Chunks(ctx context.Context) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		traversalCtx := ctx
		if traversalCtx == nil {
			traversalCtx = context.Background()
		}

		if request.isStreamDone() {
			return
		}

		stream := &bodyStream{notify: make(chan struct{}, 1)}

		dataListener := request.On(EventData, stream.onData)
		endListener := request.On(EventEnd, stream.onEnd)
		closeListener := request.On(EventClose, stream.onClose)
		errorListener := request.On(EventError, stream.onError)
		defer func() {
			request.RemoveListener(EventData, dataListener)
			request.RemoveListener(EventEnd, endListener)
			request.RemoveListener(EventClose, closeListener)
			request.RemoveListener(EventError, errorListener)
		}()

		request.Emit(EventAsyncIterator)

		for {
			chunk, more, err := stream.next(traversalCtx)
			if err != nil {
				if traversalCtx.Err() == nil || !errors.Is(err, traversalCtx.Err()) {
					request.markStreamDone()
				}
				yield(nil, err)
				return
			}
			if !more {
				request.markStreamDone()
				return
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

type chunkReader struct {
	next    func() ([]byte, error, bool)
	stop    func()
	pending []byte
}

func (reader *chunkReader) Read(p []byte) (int, error) {
	for len(reader.pending) == 0 {
		chunk, err, ok := reader.next()
		if !ok {
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}
		reader.pending = chunk
	}

	n := copy(p, reader.pending)
	reader.pending = reader.pending[n:]
	return n, nil
}

func (reader *chunkReader) Close() error {
	reader.stop()
	return nil
}

// BodyReader returns a reader over the lazy body sequence. Consumption starts on the first Read.
func (request *Request) BodyReader(ctx context.Context) io.ReadCloser {
	next, stop := iter.Pull2(request.Chunks(ctx))
	return &chunkReader{next: next, stop: stop}
}

// HTTPRequest builds a net/http request from the current state. Its body reads from the lazy body
// sequence, so the test drives it by emitting events. The request context carries the request ID.
func (request *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = motmedelHttpContext.WithRequestId(ctx, request.ID.String())

	target := request.URL
	if target == "" {
		target = "/"
	}

	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, target, request.BodyReader(ctx))
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(
			fmt.Errorf("http new request with context: %w", err),
			request.Method, target,
		)
	}

	httpRequest.Header = request.Headers.HTTPHeader()
	if host := request.Host(); host != "" {
		httpRequest.Host = host
	}
	httpRequest.RemoteAddr = request.IP
	httpRequest.RequestURI = request.OriginalURL

	return httpRequest, nil
}
