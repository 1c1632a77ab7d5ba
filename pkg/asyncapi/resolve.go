package asyncapi

import (
	"encoding/json"
	"strconv"
	"strings"
)

// UnresolvedRefs reports every reference token of doc that is malformed or, when it
// is local, does not point to an existing node of the document. doc is inspected in
// its serialized form so schemas, bindings and traits are all covered.
func UnresolvedRefs(doc interface{}) []Violation {
	data, err := json.Marshal(doc)
	if err != nil {
		return []Violation{Violationf("", "document cannot be serialized: %v", err)}
	}
	var tree interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return []Violation{Violationf("", "document cannot be serialized: %v", err)}
	}

	var out []Violation
	walkRefs(tree, nil, func(path []string, ref string) {
		p := strings.Join(path, ".")
		if err := ValidateRef(ref); err != nil {
			out = append(out, Violationf(p, "%v", err))
			return
		}
		if !IsLocalRef(ref) {
			return
		}
		if _, ok := lookup(tree, RefSegments(ref)); !ok {
			out = append(out, Violationf(p, "reference %q does not resolve", ref))
		}
	})
	return out
}

func walkRefs(node interface{}, path []string, visit func(path []string, ref string)) {
	switch n := node.(type) {
	case map[string]interface{}:
		if ref, ok := n["$ref"].(string); ok {
			visit(path, ref)
		}
		for _, key := range SortedKeys(n) {
			if key == "$ref" {
				continue
			}
			walkRefs(n[key], append(path[:len(path):len(path)], key), visit)
		}
	case []interface{}:
		for i, item := range n {
			walkRefs(item, append(path[:len(path):len(path)], strconv.Itoa(i)), visit)
		}
	}
}

func lookup(node interface{}, segments []string) (interface{}, bool) {
	current := node
	for _, seg := range segments {
		switch n := current.(type) {
		case map[string]interface{}:
			next, ok := n[seg]
			if !ok {
				return nil, false
			}
			current = next
		case []interface{}:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n) {
				return nil, false
			}
			current = n[i]
		default:
			return nil, false
		}
	}
	return current, true
}
