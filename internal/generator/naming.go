package generator

import (
	"strings"
	"unicode"

	"github.com/neuroglia-io/asyncapi-sub001/internal/schema"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// OperationID derives an operation id from a method name: a trailing Async is
// dropped and the rest is lower camel cased.
func OperationID(methodName string) string {
	name := methodName
	if trimmed := strings.TrimSuffix(name, "Async"); trimmed != "" {
		name = trimmed
	}
	return schema.ToLowerCamelCase(name)
}

// MessageName derives a message component name from a type name.
func MessageName(typeName string) string {
	return schema.ToLowerCamelCase(typeName)
}

// Humanize splits a Go identifier into title cased words:
// "LightMeasuredEvent" becomes "Light Measured Event".
func Humanize(name string) string {
	return titleCaser.String(strings.Join(splitWords(name), " "))
}

func splitWords(name string) []string {
	runes := []rune(name)
	var (
		words []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := unicode.IsUpper(cur) &&
			(unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])))
		if cur == '_' || cur == '-' {
			if i > start {
				words = append(words, strings.ToLower(string(runes[start:i])))
			}
			start = i + 1
			continue
		}
		if boundary {
			if i > start {
				words = append(words, strings.ToLower(string(runes[start:i])))
			}
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, strings.ToLower(string(runes[start:])))
	}
	return words
}
