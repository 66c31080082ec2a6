package strings

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ToSnakeCase converts CamelCase to snake_case
// Handles acronyms properly (HTTPRequest -> http_request)
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				// Add underscore before uppercase letter if:
				// 1. Previous char is lowercase or a digit
				// 2. Next char is lowercase (for acronyms like HTTPRequest -> http_request)
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					result.WriteRune('_')
				} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					result.WriteRune('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		case r == ' ' || r == '-':
			result.WriteRune('_')
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ToLowerCamel converts a name to lowerCamelCase (BodyOfWater -> bodyOfWater).
// A leading acronym is lowercased as a whole (HTTPServers -> httpServers).
func ToLowerCamel(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(inflect.Camelize(s))

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	// the last capital of a run followed by lowercase starts the next
	// word, unless the rest is only a plural suffix (URIs -> uris)
	if tail := string(runes[n:]); n > 1 && n < len(runes) && unicode.IsLower(runes[n]) && tail != "s" && tail != "es" {
		n--
	}
	for i := 0; i < max(n, 1) && i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// ToPascal converts a name to PascalCase, suitable for exported Go identifiers
func ToPascal(s string) string {
	if s == "" {
		return s
	}
	return inflect.Camelize(strings.ReplaceAll(s, "-", "_"))
}

// CollapseWhitespace replaces every run of whitespace with a single space
// and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
