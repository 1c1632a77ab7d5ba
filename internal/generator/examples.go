package generator

import (
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
)

// Example names.
const (
	ExampleMinimal  = "Minimal"
	ExampleExtended = "Extended"
)

// addExamples synthesizes a minimal example, with required properties only, and
// an extended one. Examples not conforming to the payload schema are kept and
// reported through the debugger.
func (g *Generator) addExamples(msg *messageModel) error {
	if g.disableExamples {
		return nil
	}
	for _, ex := range []struct {
		name         string
		requiredOnly bool
	}{
		{ExampleMinimal, true},
		{ExampleExtended, false},
	} {
		value, err := g.examples.Generate(msg.payload, ex.requiredOnly)
		if err != nil {
			return fmt.Errorf("%s example of %s: %w", ex.name, msg.name, err)
		}
		example := asyncapi.MessageExample{Name: ex.name, Payload: value}
		if msg.headers != nil {
			headers, err := g.examples.Generate(msg.headers, ex.requiredOnly)
			if err != nil {
				return fmt.Errorf("%s headers example of %s: %w", ex.name, msg.name, err)
			}
			if h, ok := headers.(map[string]interface{}); ok {
				example.Headers = h
			}
		}
		g.checkExample(msg.name, ex.name, msg.payload, value)
		msg.examples = append(msg.examples, example)
	}
	return nil
}

func (g *Generator) checkExample(message, name string, s *spec.Schema, value interface{}) {
	compiled, err := compileSchema(s)
	if err != nil {
		g.debug.Printf("%s: payload schema does not compile: %v", message, err)
		return
	}
	if err := conforms(compiled, value); err != nil {
		g.debug.Printf("%s: %s example does not match the payload schema: %v", message, name, err)
	}
}
