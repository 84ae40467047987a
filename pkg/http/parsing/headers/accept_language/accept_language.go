package accept_language

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

var ErrNilPrimarySubtag = errors.New("nil primary subtag")

func Parse(data []byte) (*motmedelHttpTypes.AcceptLanguage, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &motmedelHttpTypes.AcceptLanguage{Raw: string(data)}, nil
	}

	path, err := abnf.Parse(Grammar, data)
	if err != nil {
		return nil, fmt.Errorf("abnf parse (accept language): %w", err)
	}

	var acceptLanguage motmedelHttpTypes.AcceptLanguage

	for _, elementPath := range abnf.Search(path, "element") {
		primarySubtagPath := abnf.SearchSingle(elementPath, "primary-subtag")
		if primarySubtagPath == nil {
			return nil, motmedelErrors.NewWithTrace(
				fmt.Errorf("%w: %w", motmedelErrors.ErrSemanticError, ErrNilPrimarySubtag),
			)
		}

		qualityValue, err := abnf.QualityValue(data, elementPath)
		if err != nil {
			return nil, fmt.Errorf("quality value: %w", err)
		}

		acceptLanguage.LanguageQs = append(
			acceptLanguage.LanguageQs,
			&motmedelHttpTypes.LanguageQ{
				Tag: &motmedelHttpTypes.LanguageTag{
					PrimarySubtag: abnf.Value(data, primarySubtagPath),
					Subtag:        abnf.Value(data, abnf.SearchSingle(elementPath, "subtag")),
				},
				Q: qualityValue,
			},
		)
	}

	acceptLanguage.Raw = string(data)

	return &acceptLanguage, nil
}

func init() {
	Grammar = abnf.MustCompile("accept language", grammar)
}
