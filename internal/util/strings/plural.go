package strings

import "strings"

// Pluralize returns a best-effort English plural of an (ideally singular) noun.
//
// Rules, applied to the lower-cased tail of the word:
//   - consonant followed by "y" becomes "ies" (Category -> Categories)
//   - "s", "x", "z", "ch" and "sh" endings get "es" (Address -> Addresses)
//   - everything else gets "s"
//
// Irregular nouns (Person, Child, ...) are not handled and need manual
// correction in the generated output.
func Pluralize(word string) string {
	if word == "" {
		return word
	}
	lower := strings.ToLower(word)
	n := len(lower)

	if n >= 2 && lower[n-1] == 'y' && !isVowel(lower[n-2]) {
		return word[:len(word)-1] + "ies"
	}
	for _, suffix := range []string{"s", "x", "z", "ch", "sh"} {
		if strings.HasSuffix(lower, suffix) {
			return word + "es"
		}
	}
	return word + "s"
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
