package accept_charset

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

var ErrNilCharsetPath = errors.New("nil charset path")

func Parse(data []byte) (*motmedelHttpTypes.AcceptCharset, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &motmedelHttpTypes.AcceptCharset{Raw: string(data)}, nil
	}

	path, err := abnf.Parse(Grammar, data)
	if err != nil {
		return nil, fmt.Errorf("abnf parse (accept charset): %w", err)
	}

	acceptCharset := &motmedelHttpTypes.AcceptCharset{Raw: string(data)}

	for _, elementPath := range abnf.Search(path, "element") {
		charsetPath := abnf.SearchSingle(elementPath, "charset")
		if charsetPath == nil {
			return nil, motmedelErrors.NewWithTrace(
				fmt.Errorf("%w: %w", motmedelErrors.ErrSemanticError, ErrNilCharsetPath),
			)
		}

		qualityValue, err := abnf.QualityValue(data, elementPath)
		if err != nil {
			return nil, fmt.Errorf("quality value: %w", err)
		}

		acceptCharset.Charsets = append(
			acceptCharset.Charsets,
			&motmedelHttpTypes.Charset{Charset: abnf.Value(data, charsetPath), QualityValue: qualityValue},
		)
	}

	return acceptCharset, nil
}

func init() {
	Grammar = abnf.MustCompile("accept charset", grammar)
}
