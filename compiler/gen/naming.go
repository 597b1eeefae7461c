package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var rules = inflect.NewDefaultRuleset()

// snake converts the given struct or field name into a snake_case.
//
//	Username => username
//	FullName => full_name
//	HTTPCode => http_code
//	customerId => customer_id
func snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, current letter is uppercase,
		// and previous is lowercase (cases like: "UserInfo"), or next letter is also
		// a lowercase and previous letter is not "_".
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// plural returns the plural form of an English word.
func plural(s string) string {
	return rules.Pluralize(s)
}

// lowerFirst lowers the first rune of s.
func lowerFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToLower(r)) + s[i+len(string(r)):]
	}
	return s
}

// TableName returns the default table name of a model: the snake_case
// plural of its name.
func TableName(model string) string {
	return snake(plural(model))
}

// ColumnName returns the default column name of a field.
func ColumnName(field string) string {
	return snake(field)
}
