package runpod

import (
	"context"
	"net/http"

	"github.com/go-openapi/strfmt"
)

// NetworkVolume is persistent storage in one data center that can be
// attached to pods and endpoints there.
type NetworkVolume struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         int    `json:"size"`
	DataCenterID string `json:"dataCenterId"`
}

// NetworkVolumeCreateInput is the request body for [NetworkVolumeService.Create].
// All fields are required; Size is in GB.
type NetworkVolumeCreateInput struct {
	Name         string `json:"name"`
	Size         int    `json:"size"`
	DataCenterID string `json:"dataCenterId"`
}

// Validate checks that every field is set.
func (m *NetworkVolumeCreateInput) Validate(formats strfmt.Registry) error {
	var res validations
	res.requiredString("name", m.Name)
	res.requiredString("dataCenterId", m.DataCenterID)
	res.required("size", m.Size)
	return res.err()
}

// NetworkVolumeUpdateInput renames or grows a volume. Volumes cannot shrink.
type NetworkVolumeUpdateInput struct {
	Name *string `json:"name,omitempty"`
	Size *int    `json:"size,omitempty"`
}

// NetworkVolumeService manages network volumes.
type NetworkVolumeService struct {
	t *Transport
}

// Create provisions a network volume in a data center.
func (s *NetworkVolumeService) Create(ctx context.Context, input *NetworkVolumeCreateInput) (*NetworkVolume, error) {
	const op = "networkvolumes.create"
	if err := checkInput(op, input, input == nil); err != nil {
		return nil, err
	}

	var volume NetworkVolume
	if err := s.t.do(ctx, Request{Op: op, Method: http.MethodPost, Path: "/networkvolumes", Body: input}, &volume); err != nil {
		return nil, err
	}
	return &volume, nil
}

// List returns every network volume of the account.
func (s *NetworkVolumeService) List(ctx context.Context) ([]NetworkVolume, error) {
	var volumes []NetworkVolume
	err := s.t.do(ctx, Request{Op: "networkvolumes.list", Method: http.MethodGet, Path: "/networkvolumes"}, &volumes)
	if err != nil {
		return nil, err
	}
	return volumes, nil
}

// Get returns one network volume.
func (s *NetworkVolumeService) Get(ctx context.Context, networkVolumeID string) (*NetworkVolume, error) {
	const op = "networkvolumes.get"
	if err := requireID(op, "network volume ID", networkVolumeID); err != nil {
		return nil, err
	}

	var volume NetworkVolume
	err := s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodGet,
		Path:       "/networkvolumes/{networkVolumeId}",
		PathParams: map[string]string{"networkVolumeId": networkVolumeID},
	}, &volume)
	if err != nil {
		return nil, err
	}
	return &volume, nil
}

// Update renames or grows a volume.
func (s *NetworkVolumeService) Update(ctx context.Context, networkVolumeID string, input *NetworkVolumeUpdateInput) (*NetworkVolume, error) {
	const op = "networkvolumes.update"
	if err := requireID(op, "network volume ID", networkVolumeID); err != nil {
		return nil, err
	}
	if err := checkInput(op, input, input == nil); err != nil {
		return nil, err
	}

	var volume NetworkVolume
	err := s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodPatch,
		Path:       "/networkvolumes/{networkVolumeId}",
		PathParams: map[string]string{"networkVolumeId": networkVolumeID},
		Body:       input,
	}, &volume)
	if err != nil {
		return nil, err
	}
	return &volume, nil
}

// Delete removes a volume and all data on it.
func (s *NetworkVolumeService) Delete(ctx context.Context, networkVolumeID string) error {
	const op = "networkvolumes.delete"
	if err := requireID(op, "network volume ID", networkVolumeID); err != nil {
		return err
	}
	return s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodDelete,
		Path:       "/networkvolumes/{networkVolumeId}",
		PathParams: map[string]string{"networkVolumeId": networkVolumeID},
	}, nil)
}
