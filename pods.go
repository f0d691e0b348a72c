package runpod

import (
	"context"
	"net/http"

	"github.com/go-openapi/strfmt"
)

// Pod is a rented GPU or CPU instance.
type Pod struct {
	ID                      string         `json:"id"`
	Name                    *string        `json:"name,omitempty"`
	Image                   string         `json:"image"`
	ConsumerUserID          string         `json:"consumerUserId"`
	MachineID               string         `json:"machineId"`
	DesiredStatus           PodStatus      `json:"desiredStatus"`
	CostPerHr               float64        `json:"costPerHr"`
	AdjustedCostPerHr       float64        `json:"adjustedCostPerHr"`
	GPUCount                *int           `json:"gpuCount,omitempty"`
	VCPUCount               float64        `json:"vcpuCount"`
	MemoryInGB              float64        `json:"memoryInGb"`
	ContainerDiskInGB       int            `json:"containerDiskInGb"`
	VolumeInGB              *int           `json:"volumeInGb,omitempty"`
	VolumeMountPath         *string        `json:"volumeMountPath,omitempty"`
	VolumeEncrypted         bool           `json:"volumeEncrypted"`
	Ports                   []string       `json:"ports"`
	PortMappings            map[string]int `json:"portMappings,omitempty"`
	PublicIP                *string        `json:"publicIp,omitempty"`
	Env                     EnvVars        `json:"env"`
	DockerEntrypoint        []string       `json:"dockerEntrypoint,omitempty"`
	DockerStartCmd          []string       `json:"dockerStartCmd,omitempty"`
	Interruptible           bool           `json:"interruptible"`
	Locked                  bool           `json:"locked"`
	GPU                     *GPUInfo       `json:"gpu,omitempty"`
	CPUFlavorID             *string        `json:"cpuFlavorId,omitempty"`
	GPUTypeID               *string        `json:"gpuTypeId,omitempty"`
	TemplateID              *string        `json:"templateId,omitempty"`
	NetworkVolumeID         *string        `json:"networkVolumeId,omitempty"`
	ContainerRegistryAuthID *string        `json:"containerRegistryAuthId,omitempty"`
	EndpointID              *string        `json:"endpointId,omitempty"`
	AIAPIID                 *string        `json:"aiApiId,omitempty"`
	SLSVersion              *int           `json:"slsVersion,omitempty"`
	LastStartedAt           *string        `json:"lastStartedAt,omitempty"`
	LastStatusChange        *string        `json:"lastStatusChange,omitempty"`
	Machine                 *Machine       `json:"machine,omitempty"`
	NetworkVolume           *NetworkVolume `json:"networkVolume,omitempty"`
	SavingsPlans            []SavingsPlan  `json:"savingsPlans,omitempty"`
}

// PodCreateInput is the request body for [PodService.Create].
//
// Every field is optional. Fields left nil are chosen by the server.
type PodCreateInput struct {
	AllowedCUDAVersions     []CUDAVersion  `json:"allowedCudaVersions,omitempty"`
	CloudType               *CloudType     `json:"cloudType,omitempty"`
	ComputeType             *ComputeType   `json:"computeType,omitempty"`
	ContainerDiskInGB       *int           `json:"containerDiskInGb,omitempty"`
	ContainerRegistryAuthID *string        `json:"containerRegistryAuthId,omitempty"`
	CountryCodes            []string       `json:"countryCodes,omitempty"`
	CPUFlavorIDs            []CPUFlavorID  `json:"cpuFlavorIds,omitempty"`
	CPUFlavorPriority       *string        `json:"cpuFlavorPriority,omitempty"`
	DataCenterIDs           []DataCenterID `json:"dataCenterIds,omitempty"`
	DataCenterPriority      *string        `json:"dataCenterPriority,omitempty"`
	DockerEntrypoint        []string       `json:"dockerEntrypoint,omitempty"`
	DockerStartCmd          []string       `json:"dockerStartCmd,omitempty"`
	Env                     EnvVars        `json:"env,omitempty"`
	GlobalNetworking        *bool          `json:"globalNetworking,omitempty"`
	GPUCount                *int           `json:"gpuCount,omitempty"`
	GPUTypeIDs              []GPUTypeID    `json:"gpuTypeIds,omitempty"`
	GPUTypePriority         *string        `json:"gpuTypePriority,omitempty"`
	ImageName               *string        `json:"imageName,omitempty"`
	Interruptible           *bool          `json:"interruptible,omitempty"`
	Locked                  *bool          `json:"locked,omitempty"`
	MinDiskBandwidthMBps    *float64       `json:"minDiskBandwidthMBps,omitempty"`
	MinDownloadMbps         *float64       `json:"minDownloadMbps,omitempty"`
	MinRAMPerGPU            *int           `json:"minRAMPerGPU,omitempty"`
	MinUploadMbps           *float64       `json:"minUploadMbps,omitempty"`
	MinVCPUPerGPU           *int           `json:"minVCPUPerGPU,omitempty"`
	Name                    *string        `json:"name,omitempty"`
	NetworkVolumeID         *string        `json:"networkVolumeId,omitempty"`
	Ports                   []string       `json:"ports,omitempty"`
	SupportPublicIP         *bool          `json:"supportPublicIp,omitempty"`
	TemplateID              *string        `json:"templateId,omitempty"`
	VCPUCount               *int           `json:"vcpuCount,omitempty"`
	VolumeInGB              *int           `json:"volumeInGb,omitempty"`
	VolumeMountPath         *string        `json:"volumeMountPath,omitempty"`
}

// Validate checks enum fields.
func (m *PodCreateInput) Validate(formats strfmt.Registry) error {
	var res validations
	enumOne(&res, "cloudType", cloudTypes, m.CloudType)
	enumOne(&res, "computeType", computeTypes, m.ComputeType)
	return res.err()
}

// PodUpdateInput is the request body for [PodService.Update]. Only non-nil
// fields are changed.
type PodUpdateInput struct {
	ContainerDiskInGB       *int     `json:"containerDiskInGb,omitempty"`
	ContainerRegistryAuthID *string  `json:"containerRegistryAuthId,omitempty"`
	DockerEntrypoint        []string `json:"dockerEntrypoint,omitempty"`
	DockerStartCmd          []string `json:"dockerStartCmd,omitempty"`
	Env                     EnvVars  `json:"env,omitempty"`
	GlobalNetworking        *bool    `json:"globalNetworking,omitempty"`
	ImageName               *string  `json:"imageName,omitempty"`
	Locked                  *bool    `json:"locked,omitempty"`
	Name                    *string  `json:"name,omitempty"`
	Ports                   []string `json:"ports,omitempty"`
	VolumeInGB              *int     `json:"volumeInGb,omitempty"`
	VolumeMountPath         *string  `json:"volumeMountPath,omitempty"`
}

// ListPodsQuery filters [PodService.List]. Slice fields are sent as repeated
// query parameters.
type ListPodsQuery struct {
	ComputeType          *ComputeType   `url:"computeType,omitempty"`
	CPUFlavorID          []CPUFlavorID  `url:"cpuFlavorId,omitempty"`
	DataCenterID         []DataCenterID `url:"dataCenterId,omitempty"`
	DesiredStatus        *PodStatus     `url:"desiredStatus,omitempty"`
	EndpointID           *string        `url:"endpointId,omitempty"`
	GPUTypeID            []GPUTypeID    `url:"gpuTypeId,omitempty"`
	ID                   *string        `url:"id,omitempty"`
	ImageName            *string        `url:"imageName,omitempty"`
	IncludeMachine       *bool          `url:"includeMachine,omitempty"`
	IncludeNetworkVolume *bool          `url:"includeNetworkVolume,omitempty"`
	IncludeSavingsPlans  *bool          `url:"includeSavingsPlans,omitempty"`
	IncludeTemplate      *bool          `url:"includeTemplate,omitempty"`
	IncludeWorkers       *bool          `url:"includeWorkers,omitempty"`
	Name                 *string        `url:"name,omitempty"`
	NetworkVolumeID      *string        `url:"networkVolumeId,omitempty"`
	TemplateID           *string        `url:"templateId,omitempty"`
}

// GetPodQuery selects related objects to embed in [PodService.Get].
type GetPodQuery struct {
	IncludeMachine       *bool `url:"includeMachine,omitempty"`
	IncludeNetworkVolume *bool `url:"includeNetworkVolume,omitempty"`
	IncludeSavingsPlans  *bool `url:"includeSavingsPlans,omitempty"`
	IncludeTemplate      *bool `url:"includeTemplate,omitempty"`
	IncludeWorkers       *bool `url:"includeWorkers,omitempty"`
}

// PodService manages pods.
type PodService struct {
	t *Transport
}

// Create rents a new pod.
//
//	pod, err := client.Pods().Create(ctx, &runpod.PodCreateInput{
//	    Name:       runpod.String("trainer"),
//	    ImageName:  runpod.String("runpod/pytorch:2.1.0-py3.10-cuda11.8.0-devel-ubuntu22.04"),
//	    GPUTypeIDs: []runpod.GPUTypeID{runpod.GPUNvidiaGeForceRTX4090},
//	    GPUCount:   runpod.Int(1),
//	})
func (s *PodService) Create(ctx context.Context, input *PodCreateInput) (*Pod, error) {
	const op = "pods.create"
	if err := checkInput(op, input, input == nil); err != nil {
		return nil, err
	}

	var pod Pod
	err := s.t.do(ctx, Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   "/pods",
		Body:   input,
	}, &pod)
	if err != nil {
		return nil, err
	}
	return &pod, nil
}

// List returns the pods of the account. A nil query lists everything.
func (s *PodService) List(ctx context.Context, query *ListPodsQuery) ([]Pod, error) {
	const op = "pods.list"
	values, err := encodeQuery(op, query)
	if err != nil {
		return nil, err
	}

	var pods []Pod
	err = s.t.do(ctx, Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   "/pods",
		Query:  values,
	}, &pods)
	if err != nil {
		return nil, err
	}
	return pods, nil
}

// Get returns a single pod.
func (s *PodService) Get(ctx context.Context, podID string, query *GetPodQuery) (*Pod, error) {
	const op = "pods.get"
	if err := requireID(op, "pod ID", podID); err != nil {
		return nil, err
	}
	values, err := encodeQuery(op, query)
	if err != nil {
		return nil, err
	}

	var pod Pod
	err = s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodGet,
		Path:       "/pods/{podId}",
		PathParams: map[string]string{"podId": podID},
		Query:      values,
	}, &pod)
	if err != nil {
		return nil, err
	}
	return &pod, nil
}

// Update changes a pod. The pod may be reset to apply the change.
func (s *PodService) Update(ctx context.Context, podID string, input *PodUpdateInput) (*Pod, error) {
	const op = "pods.update"
	if err := requireID(op, "pod ID", podID); err != nil {
		return nil, err
	}
	if err := checkInput(op, input, input == nil); err != nil {
		return nil, err
	}

	var pod Pod
	err := s.t.do(ctx, Request{
		Op:         op,
		Method:     http.MethodPatch,
		Path:       "/pods/{podId}",
		PathParams: map[string]string{"podId": podID},
		Body:       input,
	}, &pod)
	if err != nil {
		return nil, err
	}
	return &pod, nil
}

// Delete terminates a pod. Its container disk is lost.
func (s *PodService) Delete(ctx context.Context, podID string) error {
	return s.action(ctx, "pods.delete", http.MethodDelete, podID, "")
}

// Start resumes a stopped pod.
func (s *PodService) Start(ctx context.Context, podID string) error {
	return s.action(ctx, "pods.start", http.MethodPost, podID, "/start")
}

// Stop halts a running pod. The volume disk is kept.
func (s *PodService) Stop(ctx context.Context, podID string) error {
	return s.action(ctx, "pods.stop", http.MethodPost, podID, "/stop")
}

// Reset recreates the pod's container from its image.
func (s *PodService) Reset(ctx context.Context, podID string) error {
	return s.action(ctx, "pods.reset", http.MethodPost, podID, "/reset")
}

// Restart restarts the pod's container.
func (s *PodService) Restart(ctx context.Context, podID string) error {
	return s.action(ctx, "pods.restart", http.MethodPost, podID, "/restart")
}

func (s *PodService) action(ctx context.Context, op, method, podID, suffix string) error {
	if err := requireID(op, "pod ID", podID); err != nil {
		return err
	}
	return s.t.do(ctx, Request{
		Op:         op,
		Method:     method,
		Path:       "/pods/{podId}" + suffix,
		PathParams: map[string]string{"podId": podID},
	}, nil)
}
