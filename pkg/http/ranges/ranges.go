package ranges

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"github.com/Motmedel/http_mock_go/pkg/http/parsing/headers/range_header"
	"github.com/Motmedel/http_mock_go/pkg/http/ranges/ranges_config"
	motmedelHttpTypes "github.com/Motmedel/http_mock_go/pkg/http/types"
)

const (
	ResultUnsatisfiable = -1
	ResultMalformed     = -2
)

var (
	ErrUnsatisfiable = errors.New("range not satisfiable")
	ErrMalformed     = errors.New("malformed range")
)

// Code maps a Parse error to the numeric result used by the framework's range helper; 0 means no sentinel.
func Code(err error) int {
	switch {
	case errors.Is(err, ErrMalformed):
		return ResultMalformed
	case errors.Is(err, ErrUnsatisfiable):
		return ResultUnsatisfiable
	default:
		return 0
	}
}

type indexedRange struct {
	*motmedelHttpTypes.ByteRange
	index int
}

func combine(byteRanges []*motmedelHttpTypes.ByteRange) []*motmedelHttpTypes.ByteRange {
	ordered := make([]*indexedRange, 0, len(byteRanges))
	for i, byteRange := range byteRanges {
		ordered = append(ordered, &indexedRange{ByteRange: &motmedelHttpTypes.ByteRange{Start: byteRange.Start, End: byteRange.End}, index: i})
	}
	slices.SortStableFunc(ordered, func(a, b *indexedRange) int { return cmp.Compare(a.Start, b.Start) })

	var merged []*indexedRange
	for _, current := range ordered {
		if len(merged) == 0 {
			merged = append(merged, current)
			continue
		}

		last := merged[len(merged)-1]
		if current.Start > last.End+1 {
			merged = append(merged, current)
			continue
		}
		if current.End > last.End {
			last.End = current.End
		}
		last.index = min(last.index, current.index)
	}

	slices.SortStableFunc(merged, func(a, b *indexedRange) int { return cmp.Compare(a.index, b.index) })

	result := make([]*motmedelHttpTypes.ByteRange, 0, len(merged))
	for _, m := range merged {
		result = append(result, m.ByteRange)
	}
	return result
}

// parseHeader parses a Range field value. Only a value without "=" is malformed; specs that do not
// parse are skipped like unsatisfiable ones.
func parseHeader(header string) (*motmedelHttpTypes.Range, error) {
	unit, specs, found := strings.Cut(header, "=")
	if !found {
		return nil, motmedelErrors.New(fmt.Errorf("%w: no unit separator", ErrMalformed), header)
	}

	rangeHeader, err := range_header.Parse([]byte(header))
	if err == nil {
		return rangeHeader, nil
	}

	unit = strings.TrimSpace(unit)
	rangeHeader = &motmedelHttpTypes.Range{Raw: header, Unit: unit}
	for spec := range strings.SplitSeq(specs, ",") {
		specHeader, err := range_header.Parse([]byte(unit + "=" + strings.TrimSpace(spec)))
		if err != nil {
			continue
		}
		rangeHeader.Specs = append(rangeHeader.Specs, specHeader.Specs...)
	}

	return rangeHeader, nil
}

// Parse evaluates a Range field value against a representation of size bytes. End positions are
// clamped to the last byte; specs that cannot be satisfied are dropped.
func Parse(size int64, header string, options ...ranges_config.Option) (*motmedelHttpTypes.Ranges, error) {
	config := ranges_config.New(options...)

	rangeHeader, err := parseHeader(header)
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	result := &motmedelHttpTypes.Ranges{Type: rangeHeader.Unit}

	for _, spec := range rangeHeader.Specs {
		if spec == nil {
			continue
		}

		var start, end int64
		switch {
		case spec.FirstPos == nil && spec.LastPos != nil:
			start = size - *spec.LastPos
			end = size - 1
		case spec.FirstPos != nil && spec.LastPos == nil:
			start = *spec.FirstPos
			end = size - 1
		case spec.FirstPos != nil:
			start = *spec.FirstPos
			end = *spec.LastPos
		default:
			continue
		}

		end = min(end, size-1)
		if start > end || start < 0 {
			continue
		}

		result.Ranges = append(result.Ranges, &motmedelHttpTypes.ByteRange{Start: start, End: end})
	}

	if len(result.Ranges) == 0 {
		return nil, motmedelErrors.New(ErrUnsatisfiable, header, size)
	}

	if config.Combine {
		result.Ranges = combine(result.Ranges)
	}

	return result, nil
}
