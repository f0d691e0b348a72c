package runpod

import (
	"context"
	"net/http"

	"github.com/go-openapi/strfmt"
)

// ContainerRegistryAuth is a stored credential for pulling private images.
// The secret itself is never returned.
type ContainerRegistryAuth struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ContainerRegistryAuthCreateInput is the request body for [RegistryService.Create].
type ContainerRegistryAuthCreateInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that every field is set.
func (m *ContainerRegistryAuthCreateInput) Validate(formats strfmt.Registry) error {
	var res validations
	res.requiredString("name", m.Name)
	res.requiredString("username", m.Username)
	res.requiredString("password", m.Password)
	return res.err()
}

// String hides the password.
func (m ContainerRegistryAuthCreateInput) String() string {
	return "ContainerRegistryAuthCreateInput{Name: " + m.Name + ", Username: " + m.Username + ", Password: ****}"
}

// RegistryService manages container registry credentials.
type RegistryService struct {
	t *Transport
}

// Create stores registry credentials for pulling private images.
func (s *RegistryService) Create(ctx context.Context, input *ContainerRegistryAuthCreateInput) (*ContainerRegistryAuth, error) {
	const op = "registry.create"
	if err := checkInput(op, input, input == nil); err != nil {
		return nil, err
	}

	var auth ContainerRegistryAuth
	if err := s.t.do(ctx, Request{Op: op, Method: http.MethodPost, Path: "/containerregistryauth", Body: input}, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// List returns every registry credential of the account.
func (s *RegistryService) List(ctx context.Context) ([]ContainerRegistryAuth, error) {
	var auths []ContainerRegistryAuth
	err := s.t.do(ctx, Request{Op: "registry.list", Method: http.MethodGet, Path: "/containerregistryauth"}, &auths)
	if err != nil {
		return nil, err
	}
	return auths, nil
}

// Get returns one registry credential.
func (s *RegistryService) Get(ctx context.Context, containerRegistryAuthID string) (*ContainerRegistryAuth, error) {
	const op = "registry.get"
	if err := requireID(op, "container registry auth ID", containerRegistryAuthID); err != nil {
		return nil, err
	}

	var auth ContainerRegistryAuth
	err := s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodGet,
		Path:       "/containerregistryauth/{containerRegistryAuthId}",
		PathParams: map[string]string{"containerRegistryAuthId": containerRegistryAuthID},
	}, &auth)
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

// Delete removes registry credentials.
func (s *RegistryService) Delete(ctx context.Context, containerRegistryAuthID string) error {
	const op = "registry.delete"
	if err := requireID(op, "container registry auth ID", containerRegistryAuthID); err != nil {
		return err
	}
	return s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodDelete,
		Path:       "/containerregistryauth/{containerRegistryAuthId}",
		PathParams: map[string]string{"containerRegistryAuthId": containerRegistryAuthID},
	}, nil)
}
