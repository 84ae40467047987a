package content_type

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/Motmedel/http_mock_go/pkg/errors/types/empty_error"
	"github.com/Motmedel/http_mock_go/pkg/http/parsing/abnf"
	motmedelHttpTypes "github.com/Motmedel/http_mock_go/pkg/http/types"
	goabnf "github.com/pandatix/go-abnf"
)

//go:embed grammar.txt
var grammar []byte

var Grammar *goabnf.Grammar

var ErrCouldNotSplitParameter = errors.New("could not split parameter")

// Parse parses a Content-Type field value. Parameter values are unquoted; names keep their case.
func Parse(data []byte) (*motmedelHttpTypes.ContentType, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, motmedelErrors.NewWithTrace(empty_error.New("content type"), data)
	}

	path, err := abnf.Parse(Grammar, data)
	if err != nil {
		return nil, fmt.Errorf("abnf parse (content type): %w", err)
	}

	var contentType motmedelHttpTypes.ContentType
	contentType.Type = abnf.Value(data, abnf.SearchSingle(path, "type"))
	contentType.Subtype = abnf.Value(data, abnf.SearchSingle(path, "subtype"))

	for _, parameterPath := range abnf.Search(path, "parameter") {
		parameterString := abnf.Value(data, parameterPath)
		key, value, found := strings.Cut(parameterString, "=")
		if !found {
			return nil, motmedelErrors.NewWithTrace(
				fmt.Errorf("%w: %w", motmedelErrors.ErrSemanticError, ErrCouldNotSplitParameter),
				parameterString,
			)
		}
		contentType.Parameters = append(contentType.Parameters, [2]string{key, abnf.Unquote(value)})
	}

	return &contentType, nil
}

func init() {
	Grammar = abnf.MustCompile("content type", grammar)
}
