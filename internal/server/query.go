package server

import (
	"net/url"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/types"
)

// Reserved query parameters that are never optimizer selectors.
var reservedParams = map[string]bool{
	"lang":     true,
	"country":  true,
	"currency": true,
}

// parseOptimizeParams extracts the locale settings and the ordered
// optimizer selection from a raw query string. url.Values loses key
// order, so the raw query is walked directly to keep the selection
// order the caller wrote.
func parseOptimizeParams(rawQuery string) (*types.OptimizeParams, error) {
	params := &types.OptimizeParams{
		Language: types.DefaultLanguage,
		Country:  types.DefaultCountry,
		Currency: types.DefaultCurrency,
	}
	seen := make(map[string]bool)

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}

		switch key {
		case "lang":
			params.Language = strings.ToLower(value)
		case "country":
			params.Country = strings.ToLower(value)
		case "currency":
			params.Currency = value
		default:
			// Duplicate keys keep their first position so an optimizer
			// never runs twice in one pipeline.
			if strings.EqualFold(value, "true") && !seen[key] {
				seen[key] = true
				params.SelectedOptimizers = append(params.SelectedOptimizers, key)
			}
		}
	}

	return params, nil
}
