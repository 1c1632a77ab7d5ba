package generator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	v2 "github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/v2"
	v3 "github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/v3"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "schema.json"

// compileSchema compiles s as a draft 7 JSON schema.
func compileSchema(s *spec.Schema) (*jsonschema.Schema, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaResource, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaResource)
}

// conforms validates value against compiled. value is normalized through its JSON
// encoding first, as the validator expects decoded JSON.
func conforms(compiled *jsonschema.Schema, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return compiled.Validate(doc)
}

// schemaViolations reports every inline schema that does not compile. Schemas
// standing for a reference are left to the reference validator.
func schemaViolations(path string, s *spec.Schema) []asyncapi.Violation {
	if s == nil || s.Ref.String() != "" {
		return nil
	}
	if _, err := compileSchema(s); err != nil {
		return []asyncapi.Violation{asyncapi.Violationf(path, "invalid JSON schema: %v", err)}
	}
	return nil
}

// ValidateV2Schemas checks that every schema component and inline message
// payload or headers schema of doc compiles.
func ValidateV2Schemas(doc *v2.Document) []asyncapi.Violation {
	var out []asyncapi.Violation
	if doc.Components != nil {
		for _, name := range asyncapi.SortedKeys(doc.Components.Schemas) {
			out = append(out, schemaViolations("components.schemas."+name, doc.Components.Schemas[name])...)
		}
		for _, name := range asyncapi.SortedKeys(doc.Components.Messages) {
			out = append(out, v2MessageViolations("components.messages."+name, doc.Components.Messages[name])...)
		}
	}
	for _, name := range asyncapi.SortedKeys(doc.Channels) {
		ch := doc.Channels[name]
		if ch.Publish != nil {
			out = append(out, v2MessageViolations("channels."+name+".publish.message", ch.Publish.Message)...)
		}
		if ch.Subscribe != nil {
			out = append(out, v2MessageViolations("channels."+name+".subscribe.message", ch.Subscribe.Message)...)
		}
	}
	return out
}

func v2MessageViolations(path string, msg *v2.Message) []asyncapi.Violation {
	if msg == nil || msg.Ref != "" {
		return nil
	}
	var out []asyncapi.Violation
	for i, one := range msg.OneOf {
		out = append(out, v2MessageViolations(fmt.Sprintf("%s.oneOf.%d", path, i), one)...)
	}
	out = append(out, schemaViolations(path+".payload", msg.Payload)...)
	return append(out, schemaViolations(path+".headers", msg.Headers)...)
}

// ValidateV3Schemas checks that every schema component and inline message
// payload or headers schema of doc compiles.
func ValidateV3Schemas(doc *v3.Document) []asyncapi.Violation {
	var out []asyncapi.Violation
	if doc.Components != nil {
		for _, name := range asyncapi.SortedKeys(doc.Components.Schemas) {
			out = append(out, schemaViolations("components.schemas."+name, doc.Components.Schemas[name])...)
		}
		for _, name := range asyncapi.SortedKeys(doc.Components.Messages) {
			out = append(out, v3MessageViolations("components.messages."+name, doc.Components.Messages[name])...)
		}
	}
	for _, name := range asyncapi.SortedKeys(doc.Channels) {
		ch := doc.Channels[name]
		for _, key := range asyncapi.SortedKeys(ch.Messages) {
			out = append(out, v3MessageViolations("channels."+name+".messages."+key, ch.Messages[key])...)
		}
	}
	return out
}

func v3MessageViolations(path string, msg *v3.Message) []asyncapi.Violation {
	if msg == nil || msg.Ref != "" {
		return nil
	}
	out := schemaViolations(path+".payload", msg.Payload)
	return append(out, schemaViolations(path+".headers", msg.Headers)...)
}
