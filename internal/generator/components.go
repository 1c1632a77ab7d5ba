package generator

import (
	"fmt"

	"github.com/neuroglia-io/asyncapi-sub001/internal/config"
	"github.com/neuroglia-io/asyncapi-sub001/internal/parser/marker"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

// serverSpec is a server declared by a type annotation or by configuration.
type serverSpec struct {
	config.ServerConfig
	bindings *bindings.Collection
}

// bindingComponent is a named bindings component declared by type annotations.
type bindingComponent struct {
	name       string
	collection *bindings.Collection
}

// documentServers merges annotated and configured servers. Configured servers
// replace annotated servers of the same name.
func (g *Generator) documentServers(model *apiModel) ([]serverSpec, error) {
	var out []serverSpec
	index := map[string]int{}
	add := func(s serverSpec) {
		if i, ok := index[s.Name]; ok {
			out[i] = s
			return
		}
		index[s.Name] = len(out)
		out = append(out, s)
	}
	for _, s := range model.info.Servers {
		add(serverSpec{ServerConfig: config.ServerConfig{
			Name:        s.Name,
			Host:        s.Host,
			Protocol:    s.Protocol,
			Description: s.Description,
		}})
	}
	for _, s := range g.servers {
		collection, err := serverBindings(s)
		if err != nil {
			return nil, err
		}
		add(serverSpec{ServerConfig: s, bindings: collection})
	}
	return out, nil
}

func serverBindings(s config.ServerConfig) (*bindings.Collection, error) {
	if len(s.Bindings) == 0 {
		return nil, nil
	}
	collection := bindings.NewServerBindings()
	for _, name := range asyncapi.SortedKeys(s.Bindings) {
		protocol, ok := bindings.ParseProtocol(name)
		if !ok {
			return nil, fmt.Errorf("server %s binding %q: %w", s.Name, name, asyncapi.ErrUnsupportedProtocol)
		}
		if err := collection.Add(bindings.NewGeneric(protocol, bindings.KindServer, s.Bindings[name])); err != nil {
			return nil, fmt.Errorf("server %s: %w", s.Name, err)
		}
	}
	return collection, nil
}

// bindingComponents groups the annotated bindings by kind and component name.
func bindingComponents(declared []marker.BindingMarker) ([]bindingComponent, error) {
	var out []bindingComponent
	index := map[string]int{}
	for _, b := range declared {
		key := string(b.Kind) + "/" + b.Name
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, bindingComponent{name: b.Name, collection: bindings.NewCollection(b.Kind)})
		}
		if err := out[i].collection.Add(bindings.NewGeneric(b.Protocol, b.Kind, b.Properties)); err != nil {
			return nil, fmt.Errorf("bindings %s: %w", b.Name, err)
		}
	}
	return out, nil
}

// documentSecuritySchemes merges annotated and configured security schemes.
func (g *Generator) documentSecuritySchemes(model *apiModel) []config.SecuritySchemeConfig {
	var out []config.SecuritySchemeConfig
	index := map[string]int{}
	add := func(s config.SecuritySchemeConfig) {
		if i, ok := index[s.Name]; ok {
			out[i] = s
			return
		}
		index[s.Name] = len(out)
		out = append(out, s)
	}
	for _, s := range model.info.SecuritySchemes {
		add(config.SecuritySchemeConfig{Name: s.Name, Type: s.Type, Description: s.Description})
	}
	for _, s := range g.securitySchemes {
		add(s)
	}
	return out
}

// securitySchemeSetup configures a security scheme builder. 3.x documents carry
// oauth2 scopes as availableScopes.
func securitySchemeSetup(s config.SecuritySchemeConfig, major int) func(*builder.SecuritySchemeBuilder) {
	return func(b *builder.SecuritySchemeBuilder) {
		b.WithType(s.Type).WithDescription(s.Description)
		switch s.Type {
		case asyncapi.SecurityAPIKey, asyncapi.SecurityHTTPAPIKey:
			b.WithAPIKey(s.ParamName, s.In)
		case asyncapi.SecurityHTTP:
			b.WithScheme(s.Scheme, s.BearerFormat)
		case asyncapi.SecurityOpenIDConnect:
			b.WithOpenIDConnectURL(s.OpenIDConnectURL)
		case asyncapi.SecurityOAuth2:
			if flows := oauthFlows(s, major); flows != nil {
				b.WithFlows(flows)
			}
		}
		if major == 3 && s.Type != asyncapi.SecurityOAuth2 && len(s.Scopes) > 0 {
			b.WithScopes(s.Scopes...)
		}
	}
}

func oauthFlows(s config.SecuritySchemeConfig, major int) *asyncapi.OAuthFlows {
	if s.Flow == "" {
		return nil
	}
	scopes := make(map[string]string, len(s.Scopes))
	for _, scope := range s.Scopes {
		scopes[scope] = ""
	}
	flow := &asyncapi.OAuthFlow{
		AuthorizationURL: s.AuthorizationURL,
		TokenURL:         s.TokenURL,
	}
	if major == 3 {
		flow.AvailableScopes = scopes
	} else {
		flow.Scopes = scopes
	}
	flows := &asyncapi.OAuthFlows{}
	switch s.Flow {
	case "implicit":
		flows.Implicit = flow
	case "password":
		flows.Password = flow
	case "clientCredentials":
		flows.ClientCredentials = flow
	case "authorizationCode":
		flows.AuthorizationCode = flow
	}
	return flows
}

// channelMessages lists the distinct messages of the operations of a channel.
func channelMessages(ch *channelModel) []*messageModel {
	var out []*messageModel
	seen := map[*messageModel]bool{}
	for _, op := range ch.operations {
		if op.message != nil && !seen[op.message] {
			seen[op.message] = true
			out = append(out, op.message)
		}
	}
	return out
}
