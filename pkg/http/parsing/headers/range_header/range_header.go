package range_header

import (
	_ "embed"
	"fmt"
	"strconv"
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

func parsePosition(data []byte, path *goabnf.Path) (*int64, error) {
	if path == nil {
		return nil, nil
	}

	value := abnf.Value(data, path)
	position, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(
			fmt.Errorf("%w: strconv parse int (position): %w", motmedelErrors.ErrSemanticError, err),
			value,
		)
	}

	return &position, nil
}

// Parse parses a Range field value into its unit and range specs. Bounds are not checked against a size.
func Parse(data []byte) (*motmedelHttpTypes.Range, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, motmedelErrors.NewWithTrace(empty_error.New("range"), data)
	}

	path, err := abnf.Parse(Grammar, data)
	if err != nil {
		return nil, fmt.Errorf("abnf parse (range): %w", err)
	}

	rangeHeader := &motmedelHttpTypes.Range{
		Raw:  string(data),
		Unit: abnf.Value(data, abnf.SearchSingle(path, "range-unit")),
	}

	for _, specPath := range abnf.Search(path, "int-range", "suffix-range") {
		var spec motmedelHttpTypes.RangeSpec

		if strings.EqualFold(specPath.MatchRule, "suffix-range") {
			spec.LastPos, err = parsePosition(data, abnf.SearchSingle(specPath, "suffix-length"))
			if err != nil {
				return nil, fmt.Errorf("parse position (suffix length): %w", err)
			}
		} else {
			spec.FirstPos, err = parsePosition(data, abnf.SearchSingle(specPath, "first-pos"))
			if err != nil {
				return nil, fmt.Errorf("parse position (first pos): %w", err)
			}
			spec.LastPos, err = parsePosition(data, abnf.SearchSingle(specPath, "last-pos"))
			if err != nil {
				return nil, fmt.Errorf("parse position (last pos): %w", err)
			}
		}

		rangeHeader.Specs = append(rangeHeader.Specs, &spec)
	}

	return rangeHeader, nil
}

func init() {
	Grammar = abnf.MustCompile("range", grammar)
}
