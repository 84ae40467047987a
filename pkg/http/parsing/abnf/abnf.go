package abnf

import (
	"fmt"
	"strconv"
	"strings"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/Motmedel/http_mock_go/pkg/errors/types/nil_error"
	"github.com/Motmedel/parsing_utils/pkg/parsing_utils"
	goabnf "github.com/pandatix/go-abnf"
)

// MustCompile compiles a grammar and panics if it is invalid; it is meant for package initialization.
func MustCompile(name string, grammar []byte) *goabnf.Grammar {
	compiledGrammar, err := goabnf.ParseABNF(grammar)
	if err != nil {
		panic(fmt.Sprintf("goabnf parse abnf (%s grammar): %v", name, err))
	}
	return compiledGrammar
}

// Parse returns the first complete parse of data according to the "root" rule of grammar.
func Parse(grammar *goabnf.Grammar, data []byte) (*goabnf.Path, error) {
	if grammar == nil {
		return nil, motmedelErrors.NewWithTrace(nil_error.New("grammar"))
	}

	paths, err := parsing_utils.GetParsedDataPaths(grammar, data)
	if err != nil {
		return nil, motmedelErrors.New(
			fmt.Errorf("%w: get parsed data paths: %w", motmedelErrors.ErrSyntaxError, err),
			data,
		)
	}
	if len(paths) == 0 || paths[0] == nil {
		return nil, motmedelErrors.NewWithTrace(motmedelErrors.ErrSyntaxError, data)
	}

	return paths[0], nil
}

func matches(path *goabnf.Path, names []string) bool {
	for _, name := range names {
		if strings.EqualFold(path.MatchRule, name) {
			return true
		}
	}
	return false
}

// Search returns the outermost descendants of path matching one of the rule names, in input order.
// Matched paths are not descended into.
func Search(path *goabnf.Path, names ...string) []*goabnf.Path {
	if path == nil {
		return nil
	}

	var results []*goabnf.Path
	for _, subpath := range path.Subpaths {
		if subpath == nil {
			continue
		}
		if matches(subpath, names) {
			results = append(results, subpath)
			continue
		}
		results = append(results, Search(subpath, names...)...)
	}

	return results
}

// SearchSingle returns the first descendant of path matching one of the rule names, or nil.
func SearchSingle(path *goabnf.Path, names ...string) *goabnf.Path {
	if path == nil {
		return nil
	}

	for _, subpath := range path.Subpaths {
		if subpath == nil {
			continue
		}
		if matches(subpath, names) {
			return subpath
		}
		if result := SearchSingle(subpath, names...); result != nil {
			return result
		}
	}

	return nil
}

func Value(data []byte, path *goabnf.Path) string {
	if path == nil {
		return ""
	}
	return string(parsing_utils.ExtractPathValue(data, path))
}

// QualityValue returns the weight of a list element, defaulting to 1 when the element has no "qvalue".
func QualityValue(data []byte, elementPath *goabnf.Path) (float32, error) {
	qvaluePath := SearchSingle(elementPath, "qvalue")
	if qvaluePath == nil {
		return 1.0, nil
	}

	qvalueString := Value(data, qvaluePath)
	bitSize := 32
	parsedQualityValue, err := strconv.ParseFloat(qvalueString, bitSize)
	if err != nil {
		return 0, motmedelErrors.NewWithTrace(
			fmt.Errorf("%w: strconv parse float (qvalue): %w", motmedelErrors.ErrSemanticError, err),
			qvalueString, bitSize,
		)
	}

	return float32(parsedQualityValue), nil
}

// Unquote strips the quotes of a quoted-string and resolves its quoted-pairs. Tokens are returned unchanged.
func Unquote(value string) string {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return value
	}

	var builder strings.Builder
	inner := value[1 : len(value)-1]
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		builder.WriteByte(inner[i])
	}
	return builder.String()
}
