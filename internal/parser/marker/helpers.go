package marker

import (
	"go/ast"
	"regexp"
	"strings"
	"unicode"
)

var (
	securityPairSepPattern = regexp.MustCompile(`\|\||&&`)
	mimeTypePattern        = regexp.MustCompile(`^[^/\s]+/[^/\s]+$`)
)

var mimeTypeAliases = map[string]string{
	"json":         "application/json",
	"xml":          "text/xml",
	"plain":        "text/plain",
	"avro":         "application/vnd.apache.avro+json",
	"protobuf":     "application/x-protobuf",
	"octet-stream": "application/octet-stream",
	"cloudevents":  "application/cloudevents+json",
}

// commentLines returns the lines of doc without comment markers.
func commentLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var lines []string
	for _, c := range doc.List {
		text := c.Text
		switch {
		case strings.HasPrefix(text, "//"):
			lines = append(lines, strings.TrimSpace(strings.TrimPrefix(text, "//")))
		case strings.HasPrefix(text, "/*"):
			body := strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
			for _, l := range strings.Split(body, "\n") {
				lines = append(lines, strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(l), "*")))
			}
		}
	}
	return lines
}

// DocText returns the documentation text of doc, leaving out annotation lines.
func DocText(doc *ast.CommentGroup) string {
	var out []string
	for _, line := range commentLines(doc) {
		if strings.HasPrefix(line, "@") {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// fieldsByAnySpace splits s around runs of white space, returning at most n fields.
func fieldsByAnySpace(s string, n int) []string {
	var fields []string
	s = strings.TrimSpace(s)
	for s != "" && (n <= 0 || len(fields) < n-1) {
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			break
		}
		fields = append(fields, s[:i])
		s = strings.TrimSpace(s[i:])
	}
	if s != "" {
		fields = append(fields, s)
	}
	return fields
}

func appendDescription(current, value string) string {
	if current == "" {
		return value
	}
	return current + "\n" + value
}

// splitList splits a comma separated list, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseMimeType resolves content type aliases.
func parseMimeType(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if mimeTypePattern.MatchString(value) {
		return value, true
	}
	alias, ok := mimeTypeAliases[strings.ToLower(value)]
	return alias, ok
}

// parseSecurity parses requirements like "oauth[read, write] || apiKey".
func parseSecurity(commentLine string) map[string][]string {
	securityMap := make(map[string][]string)

	for _, securityOption := range securityPairSepPattern.Split(commentLine, -1) {
		securityOption = strings.TrimSpace(securityOption)
		if securityOption == "" {
			continue
		}

		left, right := strings.Index(securityOption, "["), strings.Index(securityOption, "]")
		if left == -1 || right < left {
			if _, ok := securityMap[securityOption]; !ok {
				securityMap[securityOption] = []string{}
			}
			continue
		}

		securityKey := strings.TrimSpace(securityOption[:left])
		scopes := securityMap[securityKey]
		if scopes == nil {
			scopes = []string{}
		}
		securityMap[securityKey] = append(scopes, splitList(securityOption[left+1:right])...)
	}

	return securityMap
}
