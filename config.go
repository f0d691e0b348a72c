package runpod

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default endpoints and limits.
const (
	DefaultRESTURL    = "https://rest.runpod.io/v1"
	DefaultAPIURL     = "https://api.runpod.io/v2"
	DefaultGraphQLURL = "https://api.runpod.io/graphql"

	DefaultTimeout = 30 * time.Second
	MaxTimeout     = 300 * time.Second
)

// Environment variables read by [ConfigFromEnv].
const (
	EnvAPIKey      = "RUNPOD_API_KEY"
	EnvRESTURL     = "RUNPOD_REST_URL"
	EnvBaseURL     = "RUNPOD_BASE_URL" // legacy name for RUNPOD_REST_URL
	EnvAPIURL      = "RUNPOD_API_URL"
	EnvGraphQLURL  = "RUNPOD_GRAPHQL_URL"
	EnvTimeoutSecs = "RUNPOD_TIMEOUT_SECS"
)

// ConfigParams holds the raw settings passed to [NewConfig].
// Empty fields fall back to their defaults.
type ConfigParams struct {
	// APIKey is the RunPod API key. Required.
	APIKey string

	// RESTURL is the base URL of the REST API (pods, endpoints, templates, ...).
	RESTURL string

	// APIURL is the base URL of the serverless API used by [EndpointRunner].
	APIURL string

	// GraphQLURL is the URL of the GraphQL API.
	GraphQLURL string

	// Timeout bounds each request. Zero means [DefaultTimeout].
	Timeout time.Duration
}

// Config is the validated, immutable client configuration.
//
// A Config is safe to share between goroutines and clients. Create one with
// [NewConfig], [ConfigFromEnv] or [ConfigFromDotEnv].
type Config struct {
	apiKey     string
	restURL    string
	apiURL     string
	graphqlURL string
	timeout    time.Duration
}

// NewConfig validates p and applies defaults.
//
// It fails with a [KindConfig] error when the API key is blank, a URL is not
// an absolute http(s) URL, or the timeout is negative or above [MaxTimeout].
func NewConfig(p ConfigParams) (*Config, error) {
	key := strings.TrimSpace(p.APIKey)
	if key == "" {
		return nil, configError("API key cannot be empty", nil)
	}

	timeout := p.Timeout
	switch {
	case timeout == 0:
		timeout = DefaultTimeout
	case timeout < 0:
		return nil, configError("timeout must be greater than 0", nil)
	case timeout > MaxTimeout:
		return nil, configError(fmt.Sprintf("timeout cannot exceed %s", MaxTimeout), nil)
	}

	c := &Config{apiKey: key, timeout: timeout}

	var err error
	if c.restURL, err = baseURL("REST URL", p.RESTURL, DefaultRESTURL); err != nil {
		return nil, err
	}
	if c.apiURL, err = baseURL("API URL", p.APIURL, DefaultAPIURL); err != nil {
		return nil, err
	}
	if c.graphqlURL, err = baseURL("GraphQL URL", p.GraphQLURL, DefaultGraphQLURL); err != nil {
		return nil, err
	}

	return c, nil
}

func baseURL(name, raw, def string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", configError("invalid "+name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", configError(fmt.Sprintf("invalid %s %q: must be an absolute http(s) URL", name, raw), nil)
	}
	return strings.TrimRight(raw, "/"), nil
}

// ConfigFromEnv builds a Config from RUNPOD_* environment variables.
//
//	RUNPOD_API_KEY       required
//	RUNPOD_REST_URL      optional, falls back to RUNPOD_BASE_URL
//	RUNPOD_API_URL       optional
//	RUNPOD_GRAPHQL_URL   optional
//	RUNPOD_TIMEOUT_SECS  optional, whole seconds
func ConfigFromEnv() (*Config, error) {
	return configFromLookup(os.LookupEnv)
}

// ConfigFromDotEnv is like [ConfigFromEnv] but also reads the given .env files
// (".env" when none are given). Variables already set in the process
// environment take precedence over values from the files.
func ConfigFromDotEnv(files ...string) (*Config, error) {
	values, err := godotenv.Read(files...)
	if err != nil {
		return nil, configError("reading env file", err)
	}
	return configFromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	})
}

func configFromLookup(lookup func(string) (string, bool)) (*Config, error) {
	key, ok := lookup(EnvAPIKey)
	if !ok {
		return nil, configError(EnvAPIKey+" environment variable not set", nil)
	}

	p := ConfigParams{APIKey: key}

	if v, ok := lookup(EnvRESTURL); ok {
		p.RESTURL = v
	} else if v, ok := lookup(EnvBaseURL); ok {
		p.RESTURL = v
	}
	if v, ok := lookup(EnvAPIURL); ok {
		p.APIURL = v
	}
	if v, ok := lookup(EnvGraphQLURL); ok {
		p.GraphQLURL = v
	}
	if v, ok := lookup(EnvTimeoutSecs); ok {
		secs, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return nil, configError(fmt.Sprintf("invalid %s value: %q", EnvTimeoutSecs, v), err)
		}
		if secs == 0 {
			return nil, configError("timeout must be greater than 0", nil)
		}
		p.Timeout = time.Duration(secs) * time.Second
	}

	return NewConfig(p)
}

// APIKey returns the API key.
func (c *Config) APIKey() string { return c.apiKey }

// RESTURL returns the REST API base URL.
func (c *Config) RESTURL() string { return c.restURL }

// APIURL returns the serverless API base URL.
func (c *Config) APIURL() string { return c.apiURL }

// GraphQLURL returns the GraphQL API URL.
func (c *Config) GraphQLURL() string { return c.graphqlURL }

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration { return c.timeout }

// MaskedAPIKey returns the first four characters of the key followed by "****".
func (c *Config) MaskedAPIKey() string {
	if len(c.apiKey) > 4 {
		return c.apiKey[:4] + "****"
	}
	return "****"
}

// String implements fmt.Stringer without leaking the API key.
func (c *Config) String() string {
	return fmt.Sprintf("Config{APIKey: %s, RESTURL: %s, APIURL: %s, GraphQLURL: %s, Timeout: %s}",
		c.MaskedAPIKey(), c.restURL, c.apiURL, c.graphqlURL, c.timeout)
}

// GoString keeps %#v from printing the raw key.
func (c *Config) GoString() string { return c.String() }
