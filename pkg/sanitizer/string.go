package sanitizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// TrimLeft removes leading whitespace.
func TrimLeft(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// TrimRight removes trailing whitespace.
func TrimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// RemoveExtraWhitespace normalizes whitespace by replacing multiple consecutive
// whitespace characters with a single space and trimming.
func RemoveExtraWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// ToLower converts a string to lowercase.
func ToLower(s string) string {
	return strings.ToLower(s)
}

// ToUpper converts a string to uppercase.
func ToUpper(s string) string {
	return strings.ToUpper(s)
}

// Words splits s into words on every non-alphanumeric rune and on case
// boundaries: "userID" -> [user ID], "HTTPServer" -> [HTTP Server].
func Words(s string) []string {
	runes := []rune(s)
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// ToCamelCase converts a string to camelCase: "first name" -> "firstName".
func ToCamelCase(s string) string {
	words := Words(s)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(Capitalize(strings.ToLower(w)))
	}
	return b.String()
}

// ToPascalCase converts a string to PascalCase: "first name" -> "FirstName".
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(Capitalize(strings.ToLower(w)))
	}
	return b.String()
}

// ToSnakeCase converts a string to snake_case: "firstName" -> "first_name".
func ToSnakeCase(s string) string {
	return joinLower(Words(s), "_")
}

// ToKebabCase converts a string to kebab-case: "firstName" -> "first-name".
func ToKebabCase(s string) string {
	return joinLower(Words(s), "-")
}

func joinLower(words []string, sep string) string {
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, sep)
}

// ToTitle capitalizes the first letter of every word delimited by whitespace,
// hyphens or underscores. Separators are kept.
func ToTitle(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			start = true
			b.WriteRune(r)
			continue
		}
		if start {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		start = false
	}
	return b.String()
}

// ToSentence lower-cases every "."-delimited sentence, capitalizes its first
// letter and joins them with ". " and a trailing period.
func ToSentence(s string) string {
	var sentences []string
	for _, part := range strings.Split(s, ".") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		sentences = append(sentences, Capitalize(part))
	}
	if len(sentences) == 0 {
		return ""
	}
	return strings.Join(sentences, ". ") + "."
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}

// Label turns a field name into a human readable label:
// "email" -> "Email", "first_name" -> "First Name", "billingAddress" -> "Billing Address".
func Label(field string) string {
	words := Words(field)
	if len(words) == 0 {
		return field
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}
