package schema

import (
	"fmt"
	"go/ast"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-openapi/spec"
	"github.com/google/uuid"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
)

// Tag names
const (
	requiredLabel  = "required"
	omitEmptyLabel = "omitempty"
	jsonTag        = "json"
	bindingTag     = "binding"
	validateTag    = "validate"
	formatTag      = "format"
	titleTag       = "title"
	enumsTag       = "enums"
	maximumTag     = "maximum"
	minimumTag     = "minimum"
	defaultTag     = "default"
	exampleTag     = "example"
	minLengthTag   = "minLength"
	maxLengthTag   = "maxLength"
	minItemsTag    = "minItems"
	maxItemsTag    = "maxItems"
	schemaTypeTag  = "schematype"
)

var splitParamsRegex = regexp.MustCompile(`'[^']*'|\S+`)

// structField holds what the tag of a struct field says about its schema.
type structField struct {
	tag        reflect.StructTag
	name       string
	ignored    bool
	omitEmpty  bool
	required   bool
	schemaType []string
}

func newStructField(field *ast.Field) *structField {
	f := &structField{}
	if field.Tag != nil {
		if raw, err := strconv.Unquote(field.Tag.Value); err == nil {
			f.tag = reflect.StructTag(raw)
		}
	}

	if jsonValue, ok := f.tag.Lookup(jsonTag); ok {
		parts := strings.Split(jsonValue, ",")
		if parts[0] == "-" && len(parts) == 1 {
			f.ignored = true
			return f
		}
		f.name = parts[0]
		for _, opt := range parts[1:] {
			if opt == omitEmptyLabel {
				f.omitEmpty = true
			}
		}
	}

	for _, tagName := range []string{validateTag, bindingTag} {
		for _, rule := range strings.Split(f.tag.Get(tagName), ",") {
			if rule == requiredLabel {
				f.required = true
			}
		}
	}

	if custom := f.tag.Get(schemaTypeTag); custom != "" {
		f.schemaType = splitTrimmed(custom, ",")
	}
	return f
}

// isRequired decides whether the field must be present. An explicit required
// rule wins; otherwise nullable and omitempty fields are optional.
func (f *structField) isRequired(expr ast.Expr) bool {
	if f.required {
		return true
	}
	return !f.omitEmpty && !IsNullableExpr(expr)
}

// apply copies the constraints spelled by the tags onto schema.
func (f *structField) apply(schema *spec.Schema) error {
	schemaType := primaryType(schema)

	for _, tagName := range []string{validateTag, bindingTag} {
		if rules := f.tag.Get(tagName); rules != "" {
			parseValidTags(rules, schemaType, schema)
		}
	}

	if format := f.tag.Get(formatTag); format != "" {
		schema.Format = format
	}
	if title := f.tag.Get(titleTag); title != "" {
		schema.Title = title
	}

	if enums := f.tag.Get(enumsTag); enums != "" {
		target := schema
		if schemaType == domain.ARRAY && schema.Items != nil && schema.Items.Schema != nil {
			target = schema.Items.Schema
		}
		values, err := parseValues(splitTrimmed(enums, ","), target)
		if err != nil {
			return fmt.Errorf("%s tag: %w", enumsTag, err)
		}
		target.Enum = values
	}

	for tagName, set := range map[string]func(float64){
		minimumTag: func(v float64) { schema.WithMinimum(v, false) },
		maximumTag: func(v float64) { schema.WithMaximum(v, false) },
	} {
		v, err := getFloatTag(f.tag, tagName)
		if err != nil {
			return err
		}
		if v != nil {
			set(*v)
		}
	}

	for tagName, set := range map[string]func(int64){
		minLengthTag: func(v int64) { schema.WithMinLength(v) },
		maxLengthTag: func(v int64) { schema.WithMaxLength(v) },
		minItemsTag:  func(v int64) { schema.WithMinItems(v) },
		maxItemsTag:  func(v int64) { schema.WithMaxItems(v) },
	} {
		v, err := getIntTag(f.tag, tagName)
		if err != nil {
			return err
		}
		if v != nil {
			set(*v)
		}
	}

	if def, ok := f.tag.Lookup(defaultTag); ok {
		value, err := parseSchemaValue(def, schema)
		if err != nil {
			return fmt.Errorf("%s tag: %w", defaultTag, err)
		}
		schema.WithDefault(value)
	}

	if example, ok := f.tag.Lookup(exampleTag); ok {
		var value interface{}
		var err error
		if schemaType == domain.ARRAY {
			items := &spec.Schema{}
			if schema.Items != nil && schema.Items.Schema != nil {
				items = schema.Items.Schema
			}
			value, err = parseValues(splitTrimmed(example, ","), items)
		} else {
			value, err = parseSchemaValue(example, schema)
		}
		if err != nil {
			return fmt.Errorf("%s tag: %w", exampleTag, err)
		}
		schema.WithExample(value)
	}
	return nil
}

// primaryType returns the first non-null type of schema.
func primaryType(schema *spec.Schema) string {
	for _, t := range schema.Type {
		if t != domain.NULL {
			return t
		}
	}
	return ""
}

// getFloatTag extracts a float value from a struct tag.
func getFloatTag(structTag reflect.StructTag, tagName string) (*float64, error) {
	strValue := structTag.Get(tagName)
	if strValue == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		return nil, fmt.Errorf("can't parse numeric value of %q tag: %v", tagName, err)
	}

	return &value, nil
}

// getIntTag extracts an int value from a struct tag.
func getIntTag(structTag reflect.StructTag, tagName string) (*int64, error) {
	strValue := structTag.Get(tagName)
	if strValue == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(strValue, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("can't parse numeric value of %q tag: %v", tagName, err)
	}

	return &value, nil
}

// parseValidTags maps go-playground/validator rules onto schema constraints:
// `validate:"required,max=10,min=1"`.
func parseValidTags(validTag, schemaType string, schema *spec.Schema) {
	for _, val := range strings.Split(validTag, ",") {
		key, value, _ := strings.Cut(val, "=")

		switch key {
		case "max", "lte":
			setBound(schema, schemaType, value, false)
		case "min", "gte":
			setBound(schema, schemaType, value, true)
		case "len":
			setBound(schema, schemaType, value, true)
			setBound(schema, schemaType, value, false)
		case "oneof":
			if len(schema.Enum) > 0 {
				continue
			}
			if values, err := parseValues(parseOneOfParam(value), schema); err == nil {
				schema.Enum = values
			}
		case "unique":
			if schemaType == domain.ARRAY {
				schema.UniqueItems = true
			}
		case "email", "uuid", "uri", "url", "hostname", "ipv4", "ipv6", "datetime":
			if schemaType == domain.STRING && schema.Format == "" {
				schema.Format = validatorFormats[key]
			}
		case "dive":
			// rules after dive apply to elements
			return
		}
	}
}

const uuidFormat = "uuid"

var validatorFormats = map[string]string{
	"email":    "email",
	"uuid":     "uuid",
	"uri":      "uri",
	"url":      "uri",
	"hostname": "hostname",
	"ipv4":     "ipv4",
	"ipv6":     "ipv6",
	"datetime": "date-time",
}

func setBound(schema *spec.Schema, schemaType, raw string, lower bool) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return
	}

	switch schemaType {
	case domain.INTEGER, domain.NUMBER:
		if lower {
			schema.WithMinimum(value, false)
		} else {
			schema.WithMaximum(value, false)
		}
	case domain.STRING:
		if lower {
			schema.WithMinLength(int64(value))
		} else {
			schema.WithMaxLength(int64(value))
		}
	case domain.ARRAY:
		if lower {
			schema.WithMinItems(int64(value))
		} else {
			schema.WithMaxItems(int64(value))
		}
	}
}

// parseOneOfParam splits a oneof parameter, honoring single quotes.
func parseOneOfParam(param string) []string {
	values := splitParamsRegex.FindAllString(param, -1)
	for i := range values {
		values[i] = strings.ReplaceAll(values[i], "'", "")
	}
	return values
}

func parseValues(raw []string, schema *spec.Schema) ([]interface{}, error) {
	out := make([]interface{}, 0, len(raw))
	for _, r := range raw {
		v, err := parseSchemaValue(r, schema)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseValue converts raw to a value of the primary type of schema.
func ParseValue(raw string, schema *spec.Schema) (interface{}, error) {
	return parseSchemaValue(raw, schema)
}

// parseSchemaValue is parseValue for the primary type of schema. Values of uuid
// strings must parse as a UUID and are written in canonical form.
func parseSchemaValue(raw string, schema *spec.Schema) (interface{}, error) {
	schemaType := primaryType(schema)
	if schemaType == domain.STRING && schema.Format == uuidFormat {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a uuid: %v", raw, err)
		}
		return id.String(), nil
	}
	return parseValue(raw, schemaType)
}

// parseValue converts a tag value to the Go value matching schemaType.
func parseValue(raw, schemaType string) (interface{}, error) {
	switch schemaType {
	case domain.INTEGER:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return v, nil
	case domain.NUMBER:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return v, nil
	case domain.BOOLEAN:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", raw)
		}
		return v, nil
	}
	return raw, nil
}
