package runpod

// EnvVars are environment variables passed to a container.
type EnvVars map[string]string

// GPUInfo describes a GPU type and its pricing.
type GPUInfo struct {
	ID                 string  `json:"id"`
	Count              int     `json:"count"`
	DisplayName        string  `json:"displayName"`
	SecurePrice        float64 `json:"securePrice"`
	CommunityPrice     float64 `json:"communityPrice"`
	OneMonthPrice      float64 `json:"oneMonthPrice"`
	ThreeMonthPrice    float64 `json:"threeMonthPrice"`
	SixMonthPrice      float64 `json:"sixMonthPrice"`
	OneWeekPrice       float64 `json:"oneWeekPrice"`
	CommunitySpotPrice float64 `json:"communitySpotPrice"`
	SecureSpotPrice    float64 `json:"secureSpotPrice"`
}

// CPUType describes a CPU model.
type CPUType struct {
	ID             string  `json:"id"`
	DisplayName    string  `json:"displayName"`
	Cores          float64 `json:"cores"`
	ThreadsPerCore float64 `json:"threadsPerCore"`
	GroupID        string  `json:"groupId"`
}

// Machine is the host a pod runs on.
type Machine struct {
	MinPodGPUCount       *int     `json:"minPodGpuCount,omitempty"`
	GPUTypeID            *string  `json:"gpuTypeId,omitempty"`
	GPUType              *GPUInfo `json:"gpuType,omitempty"`
	CPUCount             *int     `json:"cpuCount,omitempty"`
	CPUTypeID            *string  `json:"cpuTypeId,omitempty"`
	CPUType              *CPUType `json:"cpuType,omitempty"`
	Location             string   `json:"location"`
	DataCenterID         string   `json:"dataCenterId"`
	DiskThroughputMBps   *int     `json:"diskThroughputMBps,omitempty"`
	MaxDownloadSpeedMbps *int     `json:"maxDownloadSpeedMbps,omitempty"`
	MaxUploadSpeedMbps   *int     `json:"maxUploadSpeedMbps,omitempty"`
	SupportPublicIP      bool     `json:"supportPublicIp"`
	SecureCloud          bool     `json:"secureCloud"`
	MaintenanceStart     *string  `json:"maintenanceStart,omitempty"`
	MaintenanceEnd       *string  `json:"maintenanceEnd,omitempty"`
	MaintenanceNote      *string  `json:"maintenanceNote,omitempty"`
	Note                 *string  `json:"note,omitempty"`
	CostPerHr            float64  `json:"costPerHr"`
	CurrentPricePerGPU   *float64 `json:"currentPricePerGpu,omitempty"`
	GPUAvailable         *int     `json:"gpuAvailable,omitempty"`
	GPUDisplayName       *string  `json:"gpuDisplayName,omitempty"`
}

// SavingsPlan is a prepaid discount attached to a pod.
type SavingsPlan struct {
	ID        string  `json:"id"`
	PodID     string  `json:"podId"`
	GPUTypeID string  `json:"gpuTypeId"`
	CostPerHr float64 `json:"costPerHr"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
}
