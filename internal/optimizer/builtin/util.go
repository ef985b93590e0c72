// Package builtin provides the built-in optimizer rule set and its
// static registration table.
package builtin

import (
	"strings"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
)

// setSanitized and setOptimized record tracking tags for the two
// change categories the built-in rules emit.
func setSanitized(product map[string]any) {
	optimizer.SetOptimizationTracking(product, optimizer.TagSanitized)
}

func setOptimized(product map[string]any) {
	optimizer.SetOptimizationTracking(product, optimizer.TagOptimized)
}

// separatorLength is the space left between product data and appended
// attributes.
const separatorLength = 1

// getString returns the named product field as a string.
func getString(product map[string]any, field string) string {
	s, _ := product[field].(string)
	return s
}

// getStrings returns the named product field as a string list,
// accepting both decoded-JSON []any and native []string values.
func getStrings(product map[string]any, field string) []string {
	switch v := product[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// getBool returns the named product field as a bool.
func getBool(product map[string]any, field string) bool {
	b, _ := product[field].(bool)
	return b
}

// runeLen counts characters, not bytes. Field limits in the Content
// API are character limits.
func runeLen(s string) int {
	return len([]rune(s))
}

// truncate cuts a string to at most max characters.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// cutListToLimitLength cuts a list to at most max elements.
func cutListToLimitLength(list []string, max int) []string {
	if len(list) <= max {
		return list
	}
	return list[:max]
}

// cutListElementsOverMaxLength removes elements longer than max
// characters.
func cutListElementsOverMaxLength(list []string, max int) []string {
	out := make([]string, 0, len(list))
	for _, element := range list {
		if runeLen(element) <= max {
			out = append(out, element)
		}
	}
	return out
}

// cutListToLimitConcatenatedLength drops trailing elements until the
// separator-joined string fits within max characters.
func cutListToLimitConcatenatedLength(list []string, separator string, max int) []string {
	out := append([]string(nil), list...)
	for len(out) > 0 && runeLen(strings.Join(out, separator)) > max {
		out = out[:len(out)-1]
	}
	return out
}

// appendKeywordsToField appends keywords to the back of a field,
// trimming the field's tail if needed to make room while never cutting
// into the first charsToPreserve characters or through a number. A
// keyword already present in the field is not appended again.
func appendKeywordsToField(field string, keywords []string, charsToPreserve, maxLength int) string {
	lowerField := strings.ToLower(field)
	// An ellipsis and space precede the keywords, so reserve two
	// separators of room.
	spaceLeft := (maxLength - charsToPreserve) - separatorLength*2

	keywordsText := keywordsText(keywords, lowerField, spaceLeft)
	if keywordsText == "" {
		return field
	}

	if maxLength-runeLen(field) >= runeLen(keywordsText) {
		return strings.TrimSpace(strings.TrimRight(field, " ") + keywordsText)
	}

	insertPos := keywordsInsertPos(field, keywordsText, maxLength, charsToPreserve)
	runes := []rune(field)
	return strings.TrimSpace(strings.TrimRight(string(runes[:insertPos]), " ") + keywordsText)
}

func keywordsText(keywords []string, lowerField string, spaceLeft int) string {
	var toAppend []string
	for _, keyword := range keywords {
		fits := runeLen(keyword)+separatorLength <= spaceLeft
		notInField := runeLen(keyword) > 1 && !strings.Contains(lowerField, strings.ToLower(keyword))
		if fits && (notInField || runeLen(keyword) < 2) {
			toAppend = append(toAppend, keyword)
			spaceLeft -= runeLen(keyword) + separatorLength
			if spaceLeft <= 0 {
				break
			}
		}
	}
	if len(toAppend) == 0 {
		return ""
	}
	if lowerField != "" {
		return "… " + strings.Join(toAppend, " ")
	}
	return strings.Join(toAppend, " ")
}

// keywordsInsertPos finds where to cut the field so the keywords text
// fits, backing up over digits so numeric product data is never
// truncated mid-value.
func keywordsInsertPos(field, keywordsText string, maxLength, charsToPreserve int) int {
	runes := []rune(field)
	overflow := (len(runes) + runeLen(keywordsText)) - maxLength
	insertPos := len(runes) - overflow
	if insertPos < charsToPreserve {
		insertPos = charsToPreserve
	}
	for insertPos > charsToPreserve && insertPos < len(runes) &&
		(runes[insertPos] == '.' || isDigit(runes[insertPos])) {
		insertPos--
	}
	return insertPos
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// fieldContainsToken reports whether any of the tokens appears as a
// case-insensitive substring of the field text.
func fieldContainsToken(fieldText string, tokens map[string]bool) bool {
	lower := strings.ToLower(fieldText)
	for token := range tokens {
		if token != "" && strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// lowerSet builds a lowercase membership set from a token list.
func lowerSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		set[strings.ToLower(token)] = true
	}
	return set
}
