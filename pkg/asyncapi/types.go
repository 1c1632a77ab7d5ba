package asyncapi

// Supported document versions.
const (
	Version2 = "2.6.0"
	Version3 = "3.0.0"
)

// Contact information for the exposed API.
type Contact struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// License information for the exposed API.
type License struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// ExternalDocumentation references an external resource for extended documentation.
type ExternalDocumentation struct {
	Ref         string `json:"$ref,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Tag adds metadata to a single tag.
type Tag struct {
	Ref          string                 `json:"$ref,omitempty"`
	Name         string                 `json:"name,omitempty"`
	Description  string                 `json:"description,omitempty"`
	ExternalDocs *ExternalDocumentation `json:"externalDocs,omitempty"`
}

// CorrelationID specifies an identifier used for message tracing and correlation.
type CorrelationID struct {
	Ref         string `json:"$ref,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// ServerVariable represents a server variable for server URL template substitution.
type ServerVariable struct {
	Ref         string   `json:"$ref,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Default     string   `json:"default,omitempty"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// MessageExample is an example of a message payload and headers.
type MessageExample struct {
	Headers map[string]interface{} `json:"headers,omitempty"`
	Payload interface{}            `json:"payload,omitempty"`
	Name    string                 `json:"name,omitempty"`
	Summary string                 `json:"summary,omitempty"`
}

// OAuthFlow configures a single OAuth flow. 2.x documents use Scopes, 3.x documents
// use AvailableScopes.
type OAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty"`
	RefreshURL       string            `json:"refreshUrl,omitempty"`
	Scopes           map[string]string `json:"scopes,omitempty"`
	AvailableScopes  map[string]string `json:"availableScopes,omitempty"`
}

// OAuthFlows allows configuration of the supported OAuth flows.
type OAuthFlows struct {
	Implicit          *OAuthFlow `json:"implicit,omitempty"`
	Password          *OAuthFlow `json:"password,omitempty"`
	ClientCredentials *OAuthFlow `json:"clientCredentials,omitempty"`
	AuthorizationCode *OAuthFlow `json:"authorizationCode,omitempty"`
}

// Security scheme types.
const (
	SecurityUserPassword         = "userPassword"
	SecurityAPIKey               = "apiKey"
	SecurityX509                 = "X509"
	SecuritySymmetricEncryption  = "symmetricEncryption"
	SecurityAsymmetricEncryption = "asymmetricEncryption"
	SecurityHTTPAPIKey           = "httpApiKey"
	SecurityHTTP                 = "http"
	SecurityOAuth2               = "oauth2"
	SecurityOpenIDConnect        = "openIdConnect"
	SecurityPlain                = "plain"
	SecurityScramSha256          = "scramSha256"
	SecurityScramSha512          = "scramSha512"
	SecurityGSSAPI               = "gssapi"
)

// SecuritySchemeTypes lists every security scheme type the specification defines.
var SecuritySchemeTypes = []string{
	SecurityUserPassword, SecurityAPIKey, SecurityX509, SecuritySymmetricEncryption,
	SecurityAsymmetricEncryption, SecurityHTTPAPIKey, SecurityHTTP, SecurityOAuth2,
	SecurityOpenIDConnect, SecurityPlain, SecurityScramSha256, SecurityScramSha512,
	SecurityGSSAPI,
}

// SecurityScheme defines a security scheme that can be used by servers and operations.
type SecurityScheme struct {
	Ref              string      `json:"$ref,omitempty"`
	Type             string      `json:"type,omitempty"`
	Description      string      `json:"description,omitempty"`
	Name             string      `json:"name,omitempty"`
	In               string      `json:"in,omitempty"`
	Scheme           string      `json:"scheme,omitempty"`
	BearerFormat     string      `json:"bearerFormat,omitempty"`
	Flows            *OAuthFlows `json:"flows,omitempty"`
	OpenIDConnectURL string      `json:"openIdConnectUrl,omitempty"`
	Scopes           []string    `json:"scopes,omitempty"`
}

// IsSecuritySchemeType reports whether t is a known security scheme type.
func IsSecuritySchemeType(t string) bool {
	for _, known := range SecuritySchemeTypes {
		if known == t {
			return true
		}
	}
	return false
}
