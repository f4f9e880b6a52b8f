// Package preprocess turns the raw standup sources into a correlated,
// AI-friendly document. It recognises ticket identifiers, joins them across
// sources and renders the result with fixed section headers.
package preprocess

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ticketPatterns are matched independently and their results unioned.
// "INFRA-1234" and "INFRA1234" stay distinct identifiers.
var ticketPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b([A-Z]{2,}-\d+)\b`),
	regexp.MustCompile(`(?i)\b([A-Z]+\d+)\b`),
}

// ExtractIdentifiers returns the set of ticket identifiers found in text,
// canonicalised to upper case.
func ExtractIdentifiers(text string) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, re := range ticketPatterns {
		for _, loc := range wordMatches(re, text) {
			ids[strings.ToUpper(text[loc[2]:loc[3]])] = struct{}{}
		}
	}
	return ids
}

// wordMatches returns the submatch indexes of re in text, dropping matches
// that touch a non-ASCII letter or digit. RE2's \b only knows ASCII word
// characters, so "éINFRA-1" would otherwise yield INFRA-1.
func wordMatches(re *regexp.Regexp, text string) [][]int {
	var matches [][]int
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		if isWordRune(lastRune(text[:loc[0]])) || isWordRune(firstRune(text[loc[1]:])) {
			continue
		}
		matches = append(matches, loc)
	}
	return matches
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func firstRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// DefaultContextWindow is the number of characters kept on each side of a mention.
const DefaultContextWindow = 100

// ExtractContext returns the text surrounding the first whole-word,
// case-insensitive occurrence of id, window characters on each side.
// A side that had to be clipped is marked with "...". It returns an empty
// string when id does not occur.
func ExtractContext(text, id string, window int) string {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(id) + `\b`)
	if err != nil {
		return ""
	}
	matches := wordMatches(re, text)
	if len(matches) == 0 {
		return ""
	}
	loc := matches[0]

	start := loc[0]
	for i := 0; i < window && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	end := loc[1]
	for i := 0; i < window && end < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}

	excerpt := strings.TrimSpace(text[start:end])
	if start > 0 {
		excerpt = "..." + excerpt
	}
	if end < len(text) {
		excerpt += "..."
	}
	return excerpt
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
