package runpod

import (
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Client is the RunPod API client.
//
// A Client is safe for concurrent use by multiple goroutines. Create one per
// API key and reuse it.
type Client struct {
	cfg       *Config
	transport *Transport

	httpClient     *http.Client
	userAgent      string
	log            zerolog.Logger
	debug          bool
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider

	pods      *PodService
	endpoints *EndpointService
	templates *TemplateService
	volumes   *NetworkVolumeService
	registry  *RegistryService
	billing   *BillingService
	graphql   *GraphQLService
}

// NewClient creates a new RunPod client from a validated configuration.
//
//	cfg, err := runpod.NewConfig(runpod.ConfigParams{APIKey: key})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := runpod.NewClient(cfg, runpod.WithLogger(logger))
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, configError("config is required", nil)
	}

	c := &Client{
		cfg:        cfg,
		httpClient: http.DefaultClient,
		userAgent:  UserAgent(),
		log:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.userAgent == "" {
		c.userAgent = UserAgent()
	}

	tel, err := newTelemetry(c.meterProvider, c.tracerProvider)
	if err != nil {
		return nil, err
	}

	c.transport, err = newTransport(cfg, transportOptions{
		httpClient: c.httpClient,
		userAgent:  c.userAgent,
		log:        c.log,
		debug:      c.debug,
		telemetry:  tel,
	})
	if err != nil {
		return nil, err
	}

	c.pods = &PodService{t: c.transport}
	c.endpoints = &EndpointService{t: c.transport}
	c.templates = &TemplateService{t: c.transport}
	c.volumes = &NetworkVolumeService{t: c.transport}
	c.registry = &RegistryService{t: c.transport}
	c.billing = &BillingService{t: c.transport}
	c.graphql = &GraphQLService{t: c.transport}

	return c, nil
}

// NewClientFromEnv is a shortcut for [ConfigFromEnv] followed by [NewClient].
func NewClientFromEnv(opts ...Option) (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg, opts...)
}

// Config returns the client configuration.
func (c *Client) Config() *Config { return c.cfg }

// Transport returns the underlying transport, for raw requests.
func (c *Client) Transport() *Transport { return c.transport }

// Pods returns the pod service.
func (c *Client) Pods() *PodService { return c.pods }

// Endpoints returns the serverless endpoint management service.
func (c *Client) Endpoints() *EndpointService { return c.endpoints }

// Templates returns the template service.
func (c *Client) Templates() *TemplateService { return c.templates }

// NetworkVolumes returns the network volume service.
func (c *Client) NetworkVolumes() *NetworkVolumeService { return c.volumes }

// Registry returns the container registry auth service.
func (c *Client) Registry() *RegistryService { return c.registry }

// Billing returns the billing service.
func (c *Client) Billing() *BillingService { return c.billing }

// GraphQL returns the GraphQL service.
func (c *Client) GraphQL() *GraphQLService { return c.graphql }

// Serverless returns a runner for jobs on the given serverless endpoint.
// The ID is checked when a request is made.
func (c *Client) Serverless(endpointID string) *EndpointRunner {
	return &EndpointRunner{t: c.transport, endpointID: endpointID}
}
