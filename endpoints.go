package runpod

import (
	"context"
	"net/http"

	"github.com/go-openapi/strfmt"
)

// Endpoint is a serverless endpoint: an autoscaling pool of workers built
// from a template.
type Endpoint struct {
	ID                  string         `json:"id"`
	Name                *string        `json:"name,omitempty"`
	UserID              string         `json:"userId"`
	TemplateID          string         `json:"templateId"`
	Version             int            `json:"version"`
	ComputeType         ComputeType    `json:"computeType"`
	CreatedAt           string         `json:"createdAt"`
	DataCenterIDs       []DataCenterID `json:"dataCenterIds"`
	Env                 EnvVars        `json:"env,omitempty"`
	ExecutionTimeoutMs  int            `json:"executionTimeoutMs"`
	GPUCount            *int           `json:"gpuCount,omitempty"`
	GPUTypeIDs          []GPUTypeID    `json:"gpuTypeIds,omitempty"`
	InstanceIDs         []string       `json:"instanceIds,omitempty"`
	IdleTimeout         int            `json:"idleTimeout"`
	NetworkVolumeID     *string        `json:"networkVolumeId,omitempty"`
	ScalerType          ScalerType     `json:"scalerType"`
	ScalerValue         int            `json:"scalerValue"`
	WorkersMax          int            `json:"workersMax"`
	WorkersMin          int            `json:"workersMin"`
	AllowedCUDAVersions []CUDAVersion  `json:"allowedCudaVersions,omitempty"`
	Template            *Template      `json:"template,omitempty"`
	Workers             []Pod          `json:"workers,omitempty"`
}

// EndpointCreateInput is the request body for [EndpointService.Create].
// TemplateID is required.
type EndpointCreateInput struct {
	TemplateID          string         `json:"templateId"`
	AllowedCUDAVersions []CUDAVersion  `json:"allowedCudaVersions,omitempty"`
	ComputeType         *ComputeType   `json:"computeType,omitempty"`
	CPUFlavorIDs        []CPUFlavorID  `json:"cpuFlavorIds,omitempty"`
	DataCenterIDs       []DataCenterID `json:"dataCenterIds,omitempty"`
	ExecutionTimeoutMs  *int           `json:"executionTimeoutMs,omitempty"`
	Flashboot           *bool          `json:"flashboot,omitempty"`
	GPUCount            *int           `json:"gpuCount,omitempty"`
	GPUTypeIDs          []GPUTypeID    `json:"gpuTypeIds,omitempty"`
	IdleTimeout         *int           `json:"idleTimeout,omitempty"`
	Name                *string        `json:"name,omitempty"`
	NetworkVolumeID     *string        `json:"networkVolumeId,omitempty"`
	ScalerType          *ScalerType    `json:"scalerType,omitempty"`
	ScalerValue         *int           `json:"scalerValue,omitempty"`
	VCPUCount           *int           `json:"vcpuCount,omitempty"`
	WorkersMax          *int           `json:"workersMax,omitempty"`
	WorkersMin          *int           `json:"workersMin,omitempty"`
}

// Validate checks the required template ID and enum fields.
func (m *EndpointCreateInput) Validate(formats strfmt.Registry) error {
	var res validations
	res.requiredString("templateId", m.TemplateID)
	enumOne(&res, "computeType", computeTypes, m.ComputeType)
	enumOne(&res, "scalerType", scalerTypes, m.ScalerType)
	return res.err()
}

// EndpointUpdateInput is the request body for [EndpointService.Update]. Only
// non-nil fields are changed.
type EndpointUpdateInput struct {
	AllowedCUDAVersions []CUDAVersion  `json:"allowedCudaVersions,omitempty"`
	CPUFlavorIDs        []CPUFlavorID  `json:"cpuFlavorIds,omitempty"`
	DataCenterIDs       []DataCenterID `json:"dataCenterIds,omitempty"`
	ExecutionTimeoutMs  *int           `json:"executionTimeoutMs,omitempty"`
	Flashboot           *bool          `json:"flashboot,omitempty"`
	GPUCount            *int           `json:"gpuCount,omitempty"`
	GPUTypeIDs          []GPUTypeID    `json:"gpuTypeIds,omitempty"`
	IdleTimeout         *int           `json:"idleTimeout,omitempty"`
	Name                *string        `json:"name,omitempty"`
	NetworkVolumeID     *string        `json:"networkVolumeId,omitempty"`
	ScalerType          *ScalerType    `json:"scalerType,omitempty"`
	ScalerValue         *int           `json:"scalerValue,omitempty"`
	TemplateID          *string        `json:"templateId,omitempty"`
	VCPUCount           *int           `json:"vcpuCount,omitempty"`
	WorkersMax          *int           `json:"workersMax,omitempty"`
	WorkersMin          *int           `json:"workersMin,omitempty"`
}

// Validate checks enum fields.
func (m *EndpointUpdateInput) Validate(formats strfmt.Registry) error {
	var res validations
	enumOne(&res, "scalerType", scalerTypes, m.ScalerType)
	return res.err()
}

// ListEndpointsQuery selects related objects to embed in [EndpointService.List].
type ListEndpointsQuery struct {
	IncludeTemplate *bool `url:"includeTemplate,omitempty"`
	IncludeWorkers  *bool `url:"includeWorkers,omitempty"`
}

// GetEndpointQuery selects related objects to embed in [EndpointService.Get].
type GetEndpointQuery struct {
	IncludeTemplate *bool `url:"includeTemplate,omitempty"`
	IncludeWorkers  *bool `url:"includeWorkers,omitempty"`
}

// EndpointService manages serverless endpoints. To submit jobs to an
// endpoint use [Client.Serverless].
type EndpointService struct {
	t *Transport
}

// Create deploys a new serverless endpoint.
func (s *EndpointService) Create(ctx context.Context, input *EndpointCreateInput) (*Endpoint, error) {
	const op = "endpoints.create"
	if err := checkInput(op, input, input == nil); err != nil {
		return nil, err
	}

	var endpoint Endpoint
	if err := s.t.do(ctx, Request{Op: op, Method: http.MethodPost, Path: "/endpoints", Body: input}, &endpoint); err != nil {
		return nil, err
	}
	return &endpoint, nil
}

// List returns the endpoints of the account.
func (s *EndpointService) List(ctx context.Context, query *ListEndpointsQuery) ([]Endpoint, error) {
	const op = "endpoints.list"
	values, err := encodeQuery(op, query)
	if err != nil {
		return nil, err
	}

	var endpoints []Endpoint
	if err := s.t.do(ctx, Request{Op: op, Method: http.MethodGet, Path: "/endpoints", Query: values}, &endpoints); err != nil {
		return nil, err
	}
	return endpoints, nil
}

// Get returns a single endpoint.
func (s *EndpointService) Get(ctx context.Context, endpointID string, query *GetEndpointQuery) (*Endpoint, error) {
	const op = "endpoints.get"
	if err := requireID(op, "endpoint ID", endpointID); err != nil {
		return nil, err
	}
	values, err := encodeQuery(op, query)
	if err != nil {
		return nil, err
	}

	var endpoint Endpoint
	err = s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodGet,
		Path:       "/endpoints/{endpointId}",
		PathParams: map[string]string{"endpointId": endpointID},
		Query:      values,
	}, &endpoint)
	if err != nil {
		return nil, err
	}
	return &endpoint, nil
}

// Update changes an endpoint. Running workers are rolled to the new version.
func (s *EndpointService) Update(ctx context.Context, endpointID string, input *EndpointUpdateInput) (*Endpoint, error) {
	const op = "endpoints.update"
	if err := requireID(op, "endpoint ID", endpointID); err != nil {
		return nil, err
	}
	if err := checkInput(op, input, input == nil); err != nil {
		return nil, err
	}

	var endpoint Endpoint
	err := s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodPatch,
		Path:       "/endpoints/{endpointId}",
		PathParams: map[string]string{"endpointId": endpointID},
		Body:       input,
	}, &endpoint)
	if err != nil {
		return nil, err
	}
	return &endpoint, nil
}

// Delete removes an endpoint and its workers.
func (s *EndpointService) Delete(ctx context.Context, endpointID string) error {
	const op = "endpoints.delete"
	if err := requireID(op, "endpoint ID", endpointID); err != nil {
		return err
	}
	return s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodDelete,
		Path:       "/endpoints/{endpointId}",
		PathParams: map[string]string{"endpointId": endpointID},
	}, nil)
}
