package caching

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	motmedelErrors "github.com/Motmedel/http_mock_go/pkg/errors"
	"golang.org/x/net/http/httpguts"
)

var ErrBadHttpDate = errors.New("bad http date")

func parseHttpDate(value string) (time.Time, error) {
	t, err := http.ParseTime(value)
	if err != nil {
		return time.Time{}, motmedelErrors.NewWithTrace(
			fmt.Errorf("%w: http parse time: %w", ErrBadHttpDate, err),
			value,
		)
	}
	return t, nil
}

// IfNoneMatchCacheHit reports whether an entity tag in the If-None-Match list matches etag, using
// weak comparison.
func IfNoneMatchCacheHit(ifNoneMatchValue string, etag string) bool {
	if ifNoneMatchValue == "" || etag == "" {
		return false
	}

	for match := range strings.SplitSeq(ifNoneMatchValue, ",") {
		match = strings.TrimSpace(match)
		if match == etag || match == "W/"+etag || "W/"+match == etag {
			return true
		}
	}

	return false
}

func IfModifiedSinceCacheHit(ifModifiedSinceValue string, lastModifiedValue string) (bool, error) {
	if ifModifiedSinceValue == "" || lastModifiedValue == "" {
		return false, nil
	}

	ifModifiedSinceTimestamp, err := parseHttpDate(ifModifiedSinceValue)
	if err != nil {
		return false, fmt.Errorf("parse http date (If-Modified-Since): %w", err)
	}

	lastModifiedTimestamp, err := parseHttpDate(lastModifiedValue)
	if err != nil {
		return false, fmt.Errorf("parse http date (Last-Modified): %w", err)
	}

	return !lastModifiedTimestamp.After(ifModifiedSinceTimestamp), nil
}

// Conditions are the request fields that make a request conditional.
type Conditions struct {
	IfModifiedSince string
	IfNoneMatch     string
	CacheControl    string
}

// Validators are the response fields conditions are evaluated against.
type Validators struct {
	ETag         string
	LastModified string
}

// Fresh reports whether a cached response described by validators can be reused for a request with
// conditions. Unparseable dates make the response stale.
func Fresh(conditions *Conditions, validators *Validators) bool {
	if conditions == nil {
		return false
	}
	if validators == nil {
		validators = &Validators{}
	}

	if conditions.IfModifiedSince == "" && conditions.IfNoneMatch == "" {
		return false
	}

	if conditions.CacheControl != "" && httpguts.HeaderValuesContainsToken([]string{conditions.CacheControl}, "no-cache") {
		return false
	}

	if conditions.IfNoneMatch != "" && strings.TrimSpace(conditions.IfNoneMatch) != "*" {
		if !IfNoneMatchCacheHit(conditions.IfNoneMatch, validators.ETag) {
			return false
		}
	}

	if conditions.IfModifiedSince != "" {
		if validators.LastModified == "" {
			return false
		}
		hit, err := IfModifiedSinceCacheHit(conditions.IfModifiedSince, validators.LastModified)
		if err != nil || !hit {
			return false
		}
	}

	return true
}
