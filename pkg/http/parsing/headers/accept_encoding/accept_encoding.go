package accept_encoding

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

var ErrNilCodingsPath = errors.New("nil codings path")

func Parse(data []byte) (*motmedelHttpTypes.AcceptEncoding, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &motmedelHttpTypes.AcceptEncoding{Raw: string(data)}, nil
	}

	path, err := abnf.Parse(Grammar, data)
	if err != nil {
		return nil, fmt.Errorf("abnf parse (accept encoding): %w", err)
	}

	var acceptEncoding motmedelHttpTypes.AcceptEncoding

	for _, elementPath := range abnf.Search(path, "element") {
		codingsPath := abnf.SearchSingle(elementPath, "codings")
		if codingsPath == nil {
			return nil, motmedelErrors.NewWithTrace(
				fmt.Errorf("%w: %w", motmedelErrors.ErrSemanticError, ErrNilCodingsPath),
			)
		}

		qualityValue, err := abnf.QualityValue(data, elementPath)
		if err != nil {
			return nil, fmt.Errorf("quality value: %w", err)
		}

		acceptEncoding.Encodings = append(
			acceptEncoding.Encodings,
			&motmedelHttpTypes.Encoding{Coding: abnf.Value(data, codingsPath), QualityValue: qualityValue},
		)
	}

	acceptEncoding.Raw = string(data)

	return &acceptEncoding, nil
}

func init() {
	Grammar = abnf.MustCompile("accept encoding", grammar)
}
