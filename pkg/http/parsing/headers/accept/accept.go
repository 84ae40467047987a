package accept

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/Motmedel/http_mock_go/pkg/http/parsing/abnf"
	motmedelHttpTypes "github.com/Motmedel/http_mock_go/pkg/http/types"
	goabnf "github.com/pandatix/go-abnf"
)

//go:embed grammar.txt
var grammar []byte

var Grammar *goabnf.Grammar

var (
	ErrCouldNotSplitParameter = errors.New("could not split parameter")
	ErrNilMediaRangePath      = errors.New("nil media range path")
)

// Parse parses an Accept field value. Weights default to 1.
func Parse(data []byte) (*motmedelHttpTypes.Accept, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &motmedelHttpTypes.Accept{Raw: string(data)}, nil
	}

	path, err := abnf.Parse(Grammar, data)
	if err != nil {
		return nil, fmt.Errorf("abnf parse (accept): %w", err)
	}

	accept := &motmedelHttpTypes.Accept{Raw: string(data)}

	for _, elementPath := range abnf.Search(path, "element") {
		mediaRangePath := abnf.SearchSingle(elementPath, "media-range")
		if mediaRangePath == nil {
			return nil, motmedelErrors.NewWithTrace(
				fmt.Errorf("%w: %w", motmedelErrors.ErrSemanticError, ErrNilMediaRangePath),
			)
		}

		mediaRange := &motmedelHttpTypes.MediaRange{
			MediaType: motmedelHttpTypes.MediaType{
				Type:    abnf.Value(data, abnf.SearchSingle(mediaRangePath, "type")),
				Subtype: abnf.Value(data, abnf.SearchSingle(mediaRangePath, "subtype")),
			},
		}

		for _, parameterPath := range abnf.Search(mediaRangePath, "parameter") {
			parameterString := abnf.Value(data, parameterPath)
			key, value, found := strings.Cut(parameterString, "=")
			if !found {
				return nil, motmedelErrors.NewWithTrace(
					fmt.Errorf("%w: %w", motmedelErrors.ErrSemanticError, ErrCouldNotSplitParameter),
					parameterString,
				)
			}
			mediaRange.Parameters = append(mediaRange.Parameters, [2]string{key, abnf.Unquote(value)})
		}

		weight, err := abnf.QualityValue(data, elementPath)
		if err != nil {
			return nil, fmt.Errorf("quality value: %w", err)
		}
		mediaRange.Weight = weight

		accept.MediaRanges = append(accept.MediaRanges, mediaRange)
	}

	return accept, nil
}

func init() {
	Grammar = abnf.MustCompile("accept", grammar)
}
