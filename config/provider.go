package config

// Provider defines the api for configuration providers
// to implement to expose configuration information.
// output is a pointer to a struct or map[string]any.
type Provider interface {
	Unmarshal(path string, flat bool, output any) error
}
