package runpod

import (
	"context"
	"net/http"

	"github.com/go-openapi/strfmt"
)

// Template is a reusable pod or endpoint configuration.
type Template struct {
	ID                      string            `json:"id"`
	Name                    string            `json:"name"`
	ImageName               string            `json:"imageName"`
	IsPublic                bool              `json:"isPublic"`
	IsRunpod                bool              `json:"isRunpod"`
	IsServerless            bool              `json:"isServerless"`
	Category                *TemplateCategory `json:"category,omitempty"`
	ContainerDiskInGB       int               `json:"containerDiskInGb"`
	ContainerRegistryAuthID *string           `json:"containerRegistryAuthId,omitempty"`
	DockerEntrypoint        []string          `json:"dockerEntrypoint,omitempty"`
	DockerStartCmd          []string          `json:"dockerStartCmd,omitempty"`
	Earned                  *float64          `json:"earned,omitempty"`
	Env                     EnvVars           `json:"env,omitempty"`
	Ports                   []string          `json:"ports,omitempty"`
	Readme                  *string           `json:"readme,omitempty"`
	RuntimeInMin            *int              `json:"runtimeInMin,omitempty"`
	VolumeInGB              int               `json:"volumeInGb"`
	VolumeMountPath         string            `json:"volumeMountPath"`
}

// TemplateCreateInput is the request body for [TemplateService.Create].
// Name and ImageName are required.
type TemplateCreateInput struct {
	Name                    string            `json:"name"`
	ImageName               string            `json:"imageName"`
	Category                *TemplateCategory `json:"category,omitempty"`
	ContainerDiskInGB       *int              `json:"containerDiskInGb,omitempty"`
	ContainerRegistryAuthID *string           `json:"containerRegistryAuthId,omitempty"`
	DockerEntrypoint        []string          `json:"dockerEntrypoint,omitempty"`
	DockerStartCmd          []string          `json:"dockerStartCmd,omitempty"`
	Env                     EnvVars           `json:"env,omitempty"`
	IsPublic                *bool             `json:"isPublic,omitempty"`
	IsServerless            *bool             `json:"isServerless,omitempty"`
	Ports                   []string          `json:"ports,omitempty"`
	Readme                  *string           `json:"readme,omitempty"`
	VolumeInGB              *int              `json:"volumeInGb,omitempty"`
	VolumeMountPath         *string           `json:"volumeMountPath,omitempty"`
}

// Validate checks required fields and the category.
func (m *TemplateCreateInput) Validate(formats strfmt.Registry) error {
	var res validations
	res.requiredString("name", m.Name)
	res.requiredString("imageName", m.ImageName)
	enumOne(&res, "category", templateCategories, m.Category)
	return res.err()
}

// TemplateUpdateInput is the request body for [TemplateService.Update].
type TemplateUpdateInput struct {
	ContainerDiskInGB       *int     `json:"containerDiskInGb,omitempty"`
	ContainerRegistryAuthID *string  `json:"containerRegistryAuthId,omitempty"`
	DockerEntrypoint        []string `json:"dockerEntrypoint,omitempty"`
	DockerStartCmd          []string `json:"dockerStartCmd,omitempty"`
	Env                     EnvVars  `json:"env,omitempty"`
	ImageName               *string  `json:"imageName,omitempty"`
	IsPublic                *bool    `json:"isPublic,omitempty"`
	Name                    *string  `json:"name,omitempty"`
	Ports                   []string `json:"ports,omitempty"`
	Readme                  *string  `json:"readme,omitempty"`
	VolumeInGB              *int     `json:"volumeInGb,omitempty"`
	VolumeMountPath         *string  `json:"volumeMountPath,omitempty"`
}

// ListTemplatesQuery widens [TemplateService.List] beyond the account's own
// templates.
type ListTemplatesQuery struct {
	IncludeEndpointBoundTemplates *bool `url:"includeEndpointBoundTemplates,omitempty"`
	IncludePublicTemplates        *bool `url:"includePublicTemplates,omitempty"`
	IncludeRunpodTemplates        *bool `url:"includeRunpodTemplates,omitempty"`
}

// GetTemplateQuery widens the lookup of [TemplateService.Get].
type GetTemplateQuery struct {
	IncludeEndpointBoundTemplates *bool `url:"includeEndpointBoundTemplates,omitempty"`
	IncludePublicTemplates        *bool `url:"includePublicTemplates,omitempty"`
	IncludeRunpodTemplates        *bool `url:"includeRunpodTemplates,omitempty"`
}

// TemplateService manages templates.
type TemplateService struct {
	t *Transport
}

// Create adds a template.
func (s *TemplateService) Create(ctx context.Context, input *TemplateCreateInput) (*Template, error) {
	const op = "templates.create"
	if err := checkInput(op, input, input == nil); err != nil {
		return nil, err
	}

	var template Template
	if err := s.t.do(ctx, Request{Op: op, Method: http.MethodPost, Path: "/templates", Body: input}, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// List returns the account's templates, plus public and RunPod ones when
// the query asks for them.
func (s *TemplateService) List(ctx context.Context, query *ListTemplatesQuery) ([]Template, error) {
	const op = "templates.list"
	values, err := encodeQuery(op, query)
	if err != nil {
		return nil, err
	}

	var templates []Template
	if err := s.t.do(ctx, Request{Op: op, Method: http.MethodGet, Path: "/templates", Query: values}, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Get returns one template.
func (s *TemplateService) Get(ctx context.Context, templateID string, query *GetTemplateQuery) (*Template, error) {
	const op = "templates.get"
	if err := requireID(op, "template ID", templateID); err != nil {
		return nil, err
	}
	values, err := encodeQuery(op, query)
	if err != nil {
		return nil, err
	}

	var template Template
	err = s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodGet,
		Path:       "/templates/{templateId}",
		PathParams: map[string]string{"templateId": templateID},
		Query:      values,
	}, &template)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// Update changes a template. Pods and endpoints using it are not restarted.
func (s *TemplateService) Update(ctx context.Context, templateID string, input *TemplateUpdateInput) (*Template, error) {
	const op = "templates.update"
	if err := requireID(op, "template ID", templateID); err != nil {
		return nil, err
	}
	if err := checkInput(op, input, input == nil); err != nil {
		return nil, err
	}

	var template Template
	err := s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodPatch,
		Path:       "/templates/{templateId}",
		PathParams: map[string]string{"templateId": templateID},
		Body:       input,
	}, &template)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// Delete removes a template.
func (s *TemplateService) Delete(ctx context.Context, templateID string) error {
	const op = "templates.delete"
	if err := requireID(op, "template ID", templateID); err != nil {
		return err
	}
	return s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodDelete,
		Path:       "/templates/{templateId}",
		PathParams: map[string]string{"templateId": templateID},
	}, nil)
}
