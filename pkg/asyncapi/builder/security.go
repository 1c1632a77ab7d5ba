package builder

import (
	"strings"

	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
)

// SecuritySchemeBuilder builds a SecurityScheme. The shape is shared by 2.x and 3.x
// documents; only OAuth flow scopes differ and are set by the caller.
type SecuritySchemeBuilder struct {
	life       Lifecycle
	draft      *asyncapi.SecurityScheme
	validators Validators[*asyncapi.SecurityScheme]
}

// NewSecuritySchemeBuilder creates a SecuritySchemeBuilder using validators.
func NewSecuritySchemeBuilder(validators ...Validator[*asyncapi.SecurityScheme]) *SecuritySchemeBuilder {
	return &SecuritySchemeBuilder{
		draft:      &asyncapi.SecurityScheme{},
		validators: validators,
	}
}

// WithType sets the scheme type, e.g. userPassword, httpApiKey or oauth2.
func (b *SecuritySchemeBuilder) WithType(schemeType string) *SecuritySchemeBuilder {
	if b.life.Guard("WithType") {
		b.draft.Type = schemeType
	}
	return b
}

// WithDescription sets the scheme description.
func (b *SecuritySchemeBuilder) WithDescription(description string) *SecuritySchemeBuilder {
	if b.life.Guard("WithDescription") {
		b.draft.Description = description
	}
	return b
}

// WithAPIKey sets the name and the location of an httpApiKey or apiKey scheme.
func (b *SecuritySchemeBuilder) WithAPIKey(name, in string) *SecuritySchemeBuilder {
	if b.life.Guard("WithAPIKey") {
		b.draft.Name = name
		b.draft.In = in
	}
	return b
}

// WithScheme sets the HTTP authorization scheme and its bearer format.
func (b *SecuritySchemeBuilder) WithScheme(scheme, bearerFormat string) *SecuritySchemeBuilder {
	if b.life.Guard("WithScheme") {
		b.draft.Scheme = scheme
		b.draft.BearerFormat = bearerFormat
	}
	return b
}

// WithFlows sets the OAuth flows.
func (b *SecuritySchemeBuilder) WithFlows(flows *asyncapi.OAuthFlows) *SecuritySchemeBuilder {
	if b.life.Guard("WithFlows") {
		b.draft.Flows = flows
	}
	return b
}

// WithOpenIDConnectURL sets the OpenID Connect discovery URL.
func (b *SecuritySchemeBuilder) WithOpenIDConnectURL(url string) *SecuritySchemeBuilder {
	if b.life.Guard("WithOpenIDConnectURL") {
		b.draft.OpenIDConnectURL = url
	}
	return b
}

// WithScopes sets the scopes required by the scheme.
func (b *SecuritySchemeBuilder) WithScopes(scopes ...string) *SecuritySchemeBuilder {
	if b.life.Guard("WithScopes") {
		b.draft.Scopes = append(b.draft.Scopes, scopes...)
	}
	return b
}

// Build validates and returns the security scheme.
func (b *SecuritySchemeBuilder) Build() (*asyncapi.SecurityScheme, error) {
	if err := Finish(&b.life, "security scheme", b.draft, b.validators...); err != nil {
		return nil, err
	}
	return b.draft, nil
}

// ValidateSecurityScheme is the default security scheme validator.
func ValidateSecurityScheme(s *asyncapi.SecurityScheme) []asyncapi.Violation {
	if s.Ref != "" {
		return nil
	}
	var out []asyncapi.Violation
	switch {
	case s.Type == "":
		out = append(out, asyncapi.Violationf("type", "is required"))
	case !asyncapi.IsSecuritySchemeType(s.Type):
		out = append(out, asyncapi.Violationf("type", "unknown security scheme type %q", s.Type))
	}
	switch s.Type {
	case asyncapi.SecurityAPIKey:
		if s.In != "user" && s.In != "password" {
			out = append(out, asyncapi.Violationf("in", "must be user or password"))
		}
	case asyncapi.SecurityHTTPAPIKey:
		if s.Name == "" {
			out = append(out, asyncapi.Violationf("name", "is required"))
		}
		if s.In != "query" && s.In != "header" && s.In != "cookie" {
			out = append(out, asyncapi.Violationf("in", "must be query, header or cookie"))
		}
	case asyncapi.SecurityHTTP:
		if s.Scheme == "" {
			out = append(out, asyncapi.Violationf("scheme", "is required"))
		}
	case asyncapi.SecurityOAuth2:
		if s.Flows == nil {
			out = append(out, asyncapi.Violationf("flows", "is required"))
		}
	case asyncapi.SecurityOpenIDConnect:
		if s.OpenIDConnectURL == "" {
			out = append(out, asyncapi.Violationf("openIdConnectUrl", "is required"))
		}
	}
	return out
}

// ValidateContentType reports a violation when contentType is set but is not a
// type/subtype media type.
func ValidateContentType(path, contentType string) []asyncapi.Violation {
	if contentType == "" {
		return nil
	}
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	parts := strings.Split(mediaType, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return []asyncapi.Violation{asyncapi.Violationf(path, "%q is not a media type", contentType)}
	}
	return nil
}
