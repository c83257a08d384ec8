package config

import "strings"

// Source records where a resolved endpoint came from.
type Source string

const (
	SourceFlag        Source = "flag"
	SourceEnv         Source = "env"
	SourceConfig      Source = "config"
	SourceDevDefault  Source = "dev-default"
	SourceProdDefault Source = "default"
)

// Endpoint is a resolved review service URL.
type Endpoint struct {
	URL    string
	Source Source
}

// ResolveEndpoint picks the review service URL. Order: explicit override,
// then CODEREV_ENDPOINT (or the legacy API_URL), then the config file, then
// the compiled default for the configured mode. getenv is usually os.Getenv.
func (c *Config) ResolveEndpoint(override string, getenv func(string) string) Endpoint {
	if v := strings.TrimSpace(override); v != "" {
		return Endpoint{URL: v, Source: SourceFlag}
	}

	if getenv != nil {
		for _, key := range []string{EnvEndpoint, EnvEndpointLegacy} {
			if v := strings.TrimSpace(getenv(key)); v != "" {
				return Endpoint{URL: v, Source: SourceEnv}
			}
		}
	}

	if v := strings.TrimSpace(c.Endpoint); v != "" {
		return Endpoint{URL: v, Source: SourceConfig}
	}

	if c.Mode == ModeDevelopment {
		dev := c.DevEndpoint
		if dev == "" {
			dev = DefaultDevEndpoint
		}
		return Endpoint{URL: dev, Source: SourceDevDefault}
	}

	return Endpoint{URL: DefaultEndpoint, Source: SourceProdDefault}
}
