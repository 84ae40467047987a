// Package content_encoding decodes bodies according to a Content-Encoding field value.
package content_encoding

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var ErrUnsupportedEncoding = errors.New("unsupported content encoding")

// Encodings splits a Content-Encoding field value into its codings, in the order they were applied.
func Encodings(header string) []string {
	var encodings []string
	for part := range strings.SplitSeq(header, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" && part != "identity" {
			encodings = append(encodings, part)
		}
	}
	return encodings
}

func Supported(encoding string) bool {
	switch encoding {
	case "gzip", "x-gzip", "deflate", "br", "zstd":
		return true
	default:
		return false
	}
}

type zstdReadCloser struct {
	*zstd.Decoder
}

func (reader zstdReadCloser) Close() error {
	reader.Decoder.Close()
	return nil
}

func newDecoder(reader io.Reader, encoding string) (io.ReadCloser, error) {
	switch encoding {
	case "gzip", "x-gzip":
		gzipReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("gzip new reader: %w", err)
		}
		return gzipReader, nil
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return io.NopCloser(brotli.NewReader(reader)), nil
	case "zstd":
		decoder, err := zstd.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("zstd new reader: %w", err)
		}
		return zstdReadCloser{Decoder: decoder}, nil
	default:
		return nil, motmedelErrors.NewWithTrace(ErrUnsupportedEncoding, encoding)
	}
}

type decodedReader struct {
	io.Reader
	closers []io.Closer
}

func (reader *decodedReader) Close() error {
	var errs []error
	for i := len(reader.closers) - 1; i >= 0; i-- {
		if err := reader.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewReader wraps reader so that it yields the body with every coding of contentEncoding removed.
// Codings are removed in the reverse order of application.
func NewReader(reader io.Reader, contentEncoding string) (io.ReadCloser, error) {
	decoded := &decodedReader{Reader: reader}

	encodings := Encodings(contentEncoding)
	for i := len(encodings) - 1; i >= 0; i-- {
		decoder, err := newDecoder(decoded.Reader, encodings[i])
		if err != nil {
			_ = decoded.Close()
			return nil, fmt.Errorf("new decoder: %w", err)
		}
		decoded.Reader = decoder
		decoded.closers = append(decoded.closers, decoder)
	}

	return decoded, nil
}

func Decode(data []byte, contentEncoding string) ([]byte, error) {
	reader, err := NewReader(bytes.NewReader(data), contentEncoding)
	if err != nil {
		return nil, fmt.Errorf("new reader: %w", err)
	}
	defer reader.Close()

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("io read all: %w", err), contentEncoding)
	}

	return decoded, nil
}
