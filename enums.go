package runpod

import "fmt"

// enumTable maps wire strings to enum values and back. Values are kept in
// declaration order for the All* accessors.
type enumTable[T ~string] struct {
	name   string
	values []T
	index  map[string]T
}

func newEnumTable[T ~string](name string, values ...T) enumTable[T] {
	t := enumTable[T]{name: name, values: values, index: make(map[string]T, len(values))}
	for _, v := range values {
		if _, dup := t.index[string(v)]; dup {
			panic("runpod: duplicate " + name + " value " + string(v))
		}
		t.index[string(v)] = v
	}
	return t
}

func (t enumTable[T]) parse(s string) (T, error) {
	v, ok := t.index[s]
	if !ok {
		var zero T
		return zero, invalidRequest("parse", fmt.Sprintf("unknown %s %q", t.name, s), nil)
	}
	return v, nil
}

func (t enumTable[T]) all() []T {
	out := make([]T, len(t.values))
	copy(out, t.values)
	return out
}

// strings returns the wire values, for go-openapi enum validation.
func (t enumTable[T]) strings() []interface{} {
	out := make([]interface{}, len(t.values))
	for i, v := range t.values {
		out[i] = string(v)
	}
	return out
}

// ComputeType selects GPU or CPU machines.
type ComputeType string

const (
	ComputeTypeGPU ComputeType = "GPU"
	ComputeTypeCPU ComputeType = "CPU"
)

var computeTypes = newEnumTable("compute type", ComputeTypeGPU, ComputeTypeCPU)

func (v ComputeType) String() string { return string(v) }

// ParseComputeType returns the ComputeType for its wire value.
func ParseComputeType(s string) (ComputeType, error) { return computeTypes.parse(s) }

// AllComputeTypes lists every known ComputeType.
func AllComputeTypes() []ComputeType { return computeTypes.all() }

// CloudType selects the Secure or Community cloud.
type CloudType string

const (
	CloudTypeSecure    CloudType = "SECURE"
	CloudTypeCommunity CloudType = "COMMUNITY"
)

var cloudTypes = newEnumTable("cloud type", CloudTypeSecure, CloudTypeCommunity)

func (v CloudType) String() string { return string(v) }

// ParseCloudType returns the CloudType for its wire value.
func ParseCloudType(s string) (CloudType, error) { return cloudTypes.parse(s) }

// AllCloudTypes lists every known CloudType.
func AllCloudTypes() []CloudType { return cloudTypes.all() }

// PodStatus is the desired status of a pod.
type PodStatus string

const (
	PodStatusRunning    PodStatus = "RUNNING"
	PodStatusExited     PodStatus = "EXITED"
	PodStatusTerminated PodStatus = "TERMINATED"
)

var podStatuses = newEnumTable("pod status", PodStatusRunning, PodStatusExited, PodStatusTerminated)

func (v PodStatus) String() string { return string(v) }

// ParsePodStatus returns the PodStatus for its wire value.
func ParsePodStatus(s string) (PodStatus, error) { return podStatuses.parse(s) }

// AllPodStatuses lists every known PodStatus.
func AllPodStatuses() []PodStatus { return podStatuses.all() }

// CUDAVersion is a CUDA runtime version a machine may be required to support.
type CUDAVersion string

const (
	CUDA12_8 CUDAVersion = "12.8"
	CUDA12_7 CUDAVersion = "12.7"
	CUDA12_6 CUDAVersion = "12.6"
	CUDA12_5 CUDAVersion = "12.5"
	CUDA12_4 CUDAVersion = "12.4"
	CUDA12_3 CUDAVersion = "12.3"
	CUDA12_2 CUDAVersion = "12.2"
	CUDA12_1 CUDAVersion = "12.1"
	CUDA12_0 CUDAVersion = "12.0"
	CUDA11_8 CUDAVersion = "11.8"
)

var cudaVersions = newEnumTable("CUDA version",
	CUDA12_8, CUDA12_7, CUDA12_6, CUDA12_5, CUDA12_4,
	CUDA12_3, CUDA12_2, CUDA12_1, CUDA12_0, CUDA11_8,
)

func (v CUDAVersion) String() string { return string(v) }

// ParseCUDAVersion returns the CUDAVersion for its wire value.
func ParseCUDAVersion(s string) (CUDAVersion, error) { return cudaVersions.parse(s) }

// AllCUDAVersions lists every known CUDAVersion, newest first.
func AllCUDAVersions() []CUDAVersion { return cudaVersions.all() }

// GPUTypeID identifies a GPU model. The wire value is the display name used
// by the API.
type GPUTypeID string

const (
	GPUNvidiaGeForceRTX4090      GPUTypeID = "NVIDIA GeForce RTX 4090"
	GPUNvidiaA40                 GPUTypeID = "NVIDIA A40"
	GPUNvidiaRTXA5000            GPUTypeID = "NVIDIA RTX A5000"
	GPUNvidiaGeForceRTX3090      GPUTypeID = "NVIDIA GeForce RTX 3090"
	GPUNvidiaRTXA4500            GPUTypeID = "NVIDIA RTX A4500"
	GPUNvidiaRTXA6000            GPUTypeID = "NVIDIA RTX A6000"
	GPUNvidiaL40S                GPUTypeID = "NVIDIA L40S"
	GPUNvidiaL4                  GPUTypeID = "NVIDIA L4"
	GPUNvidiaH100_80GBHBM3       GPUTypeID = "NVIDIA H100 80GB HBM3"
	GPUNvidiaRTX4000Ada          GPUTypeID = "NVIDIA RTX 4000 Ada Generation"
	GPUNvidiaA100_80GBPCIe       GPUTypeID = "NVIDIA A100 80GB PCIe"
	GPUNvidiaA100SXM4_80GB       GPUTypeID = "NVIDIA A100-SXM4-80GB"
	GPUNvidiaRTXA4000            GPUTypeID = "NVIDIA RTX A4000"
	GPUNvidiaRTX6000Ada          GPUTypeID = "NVIDIA RTX 6000 Ada Generation"
	GPUNvidiaRTX2000Ada          GPUTypeID = "NVIDIA RTX 2000 Ada Generation"
	GPUNvidiaH200                GPUTypeID = "NVIDIA H200"
	GPUNvidiaL40                 GPUTypeID = "NVIDIA L40"
	GPUNvidiaH100NVL             GPUTypeID = "NVIDIA H100 NVL"
	GPUNvidiaH100PCIe            GPUTypeID = "NVIDIA H100 PCIe"
	GPUNvidiaGeForceRTX3080Ti    GPUTypeID = "NVIDIA GeForce RTX 3080 Ti"
	GPUNvidiaGeForceRTX3080      GPUTypeID = "NVIDIA GeForce RTX 3080"
	GPUNvidiaGeForceRTX3070      GPUTypeID = "NVIDIA GeForce RTX 3070"
	GPUTeslaV100PCIe16GB         GPUTypeID = "Tesla V100-PCIE-16GB"
	GPUAMDInstinctMI300XOAM      GPUTypeID = "AMD Instinct MI300X OAM"
	GPUNvidiaRTXA2000            GPUTypeID = "NVIDIA RTX A2000"
	GPUTeslaV100FHHL16GB         GPUTypeID = "Tesla V100-FHHL-16GB"
	GPUNvidiaGeForceRTX4080Super GPUTypeID = "NVIDIA GeForce RTX 4080 SUPER"
	GPUTeslaV100SXM2_16GB        GPUTypeID = "Tesla V100-SXM2-16GB"
	GPUNvidiaGeForceRTX4070Ti    GPUTypeID = "NVIDIA GeForce RTX 4070 Ti"
	GPUTeslaV100SXM2_32GB        GPUTypeID = "Tesla V100-SXM2-32GB"
	GPUNvidiaRTX4000SFFAda       GPUTypeID = "NVIDIA RTX 4000 SFF Ada Generation"
	GPUNvidiaRTX5000Ada          GPUTypeID = "NVIDIA RTX 5000 Ada Generation"
	GPUNvidiaGeForceRTX5090      GPUTypeID = "NVIDIA GeForce RTX 5090"
	GPUNvidiaA30                 GPUTypeID = "NVIDIA A30"
	GPUNvidiaGeForceRTX4080      GPUTypeID = "NVIDIA GeForce RTX 4080"
	GPUNvidiaGeForceRTX5080      GPUTypeID = "NVIDIA GeForce RTX 5080"
	GPUNvidiaGeForceRTX3090Ti    GPUTypeID = "NVIDIA GeForce RTX 3090 Ti"
	GPUNvidiaB200                GPUTypeID = "NVIDIA B200"
)

var gpuTypeIDs = newEnumTable("GPU type",
	GPUNvidiaGeForceRTX4090, GPUNvidiaA40, GPUNvidiaRTXA5000, GPUNvidiaGeForceRTX3090,
	GPUNvidiaRTXA4500, GPUNvidiaRTXA6000, GPUNvidiaL40S, GPUNvidiaL4, GPUNvidiaH100_80GBHBM3,
	GPUNvidiaRTX4000Ada, GPUNvidiaA100_80GBPCIe, GPUNvidiaA100SXM4_80GB, GPUNvidiaRTXA4000,
	GPUNvidiaRTX6000Ada, GPUNvidiaRTX2000Ada, GPUNvidiaH200, GPUNvidiaL40, GPUNvidiaH100NVL,
	GPUNvidiaH100PCIe, GPUNvidiaGeForceRTX3080Ti, GPUNvidiaGeForceRTX3080, GPUNvidiaGeForceRTX3070,
	GPUTeslaV100PCIe16GB, GPUAMDInstinctMI300XOAM, GPUNvidiaRTXA2000, GPUTeslaV100FHHL16GB,
	GPUNvidiaGeForceRTX4080Super, GPUTeslaV100SXM2_16GB, GPUNvidiaGeForceRTX4070Ti,
	GPUTeslaV100SXM2_32GB, GPUNvidiaRTX4000SFFAda, GPUNvidiaRTX5000Ada, GPUNvidiaGeForceRTX5090,
	GPUNvidiaA30, GPUNvidiaGeForceRTX4080, GPUNvidiaGeForceRTX5080, GPUNvidiaGeForceRTX3090Ti,
	GPUNvidiaB200,
)

func (v GPUTypeID) String() string { return string(v) }

// ParseGPUTypeID returns the GPUTypeID for its wire value.
func ParseGPUTypeID(s string) (GPUTypeID, error) { return gpuTypeIDs.parse(s) }

// AllGPUTypeIDs lists every GPU type known to this SDK version. The server
// may offer types not listed here; they still decode into GPUTypeID.
func AllGPUTypeIDs() []GPUTypeID { return gpuTypeIDs.all() }

// CPUFlavorID identifies a CPU machine flavor.
type CPUFlavorID string

const (
	CPU3c CPUFlavorID = "cpu3c"
	CPU3g CPUFlavorID = "cpu3g"
	CPU3m CPUFlavorID = "cpu3m"
	CPU5c CPUFlavorID = "cpu5c"
	CPU5g CPUFlavorID = "cpu5g"
	CPU5m CPUFlavorID = "cpu5m"
)

var cpuFlavorIDs = newEnumTable("CPU flavor", CPU3c, CPU3g, CPU3m, CPU5c, CPU5g, CPU5m)

func (v CPUFlavorID) String() string { return string(v) }

// ParseCPUFlavorID returns the CPUFlavorID for its wire value.
func ParseCPUFlavorID(s string) (CPUFlavorID, error) { return cpuFlavorIDs.parse(s) }

// AllCPUFlavorIDs lists every known CPUFlavorID.
func AllCPUFlavorIDs() []CPUFlavorID { return cpuFlavorIDs.all() }

// DataCenterID identifies a RunPod data center.
type DataCenterID string

const (
	DataCenterEURO1  DataCenterID = "EU-RO-1"
	DataCenterCAMTL1 DataCenterID = "CA-MTL-1"
	DataCenterEUSE1  DataCenterID = "EU-SE-1"
	DataCenterUSIL1  DataCenterID = "US-IL-1"
	DataCenterEURIS1 DataCenterID = "EUR-IS-1"
	DataCenterEUCZ1  DataCenterID = "EU-CZ-1"
	DataCenterUSTX3  DataCenterID = "US-TX-3"
	DataCenterEURIS2 DataCenterID = "EUR-IS-2"
	DataCenterUSKS2  DataCenterID = "US-KS-2"
	DataCenterUSGA2  DataCenterID = "US-GA-2"
	DataCenterUSWA1  DataCenterID = "US-WA-1"
	DataCenterUSTX1  DataCenterID = "US-TX-1"
	DataCenterCAMTL3 DataCenterID = "CA-MTL-3"
	DataCenterEUNL1  DataCenterID = "EU-NL-1"
	DataCenterUSTX4  DataCenterID = "US-TX-4"
	DataCenterUSCA2  DataCenterID = "US-CA-2"
	DataCenterUSNC1  DataCenterID = "US-NC-1"
	DataCenterOCAU1  DataCenterID = "OC-AU-1"
	DataCenterUSDE1  DataCenterID = "US-DE-1"
	DataCenterEURIS3 DataCenterID = "EUR-IS-3"
	DataCenterCAMTL2 DataCenterID = "CA-MTL-2"
	DataCenterAPJP1  DataCenterID = "AP-JP-1"
	DataCenterEURNO1 DataCenterID = "EUR-NO-1"
	DataCenterEUFR1  DataCenterID = "EU-FR-1"
	DataCenterUSKS3  DataCenterID = "US-KS-3"
	DataCenterUSGA1  DataCenterID = "US-GA-1"
)

var dataCenterIDs = newEnumTable("data center",
	DataCenterEURO1, DataCenterCAMTL1, DataCenterEUSE1, DataCenterUSIL1, DataCenterEURIS1,
	DataCenterEUCZ1, DataCenterUSTX3, DataCenterEURIS2, DataCenterUSKS2, DataCenterUSGA2,
	DataCenterUSWA1, DataCenterUSTX1, DataCenterCAMTL3, DataCenterEUNL1, DataCenterUSTX4,
	DataCenterUSCA2, DataCenterUSNC1, DataCenterOCAU1, DataCenterUSDE1, DataCenterEURIS3,
	DataCenterCAMTL2, DataCenterAPJP1, DataCenterEURNO1, DataCenterEUFR1, DataCenterUSKS3,
	DataCenterUSGA1,
)

func (v DataCenterID) String() string { return string(v) }

// ParseDataCenterID returns the DataCenterID for its wire value.
func ParseDataCenterID(s string) (DataCenterID, error) { return dataCenterIDs.parse(s) }

// AllDataCenterIDs lists every data center known to this SDK version.
func AllDataCenterIDs() []DataCenterID { return dataCenterIDs.all() }

// ScalerType is the autoscaling strategy of a serverless endpoint.
type ScalerType string

const (
	// ScalerQueueDelay scales on how long requests wait in the queue.
	ScalerQueueDelay ScalerType = "QUEUE_DELAY"
	// ScalerRequestCount scales on the number of queued requests.
	ScalerRequestCount ScalerType = "REQUEST_COUNT"
)

var scalerTypes = newEnumTable("scaler type", ScalerQueueDelay, ScalerRequestCount)

func (v ScalerType) String() string { return string(v) }

// ParseScalerType returns the ScalerType for its wire value.
func ParseScalerType(s string) (ScalerType, error) { return scalerTypes.parse(s) }

// AllScalerTypes lists every known ScalerType.
func AllScalerTypes() []ScalerType { return scalerTypes.all() }

// TemplateCategory is the hardware family a template targets.
type TemplateCategory string

const (
	TemplateCategoryNvidia TemplateCategory = "NVIDIA"
	TemplateCategoryAMD    TemplateCategory = "AMD"
	TemplateCategoryCPU    TemplateCategory = "CPU"
)

var templateCategories = newEnumTable("template category",
	TemplateCategoryNvidia, TemplateCategoryAMD, TemplateCategoryCPU)

func (v TemplateCategory) String() string { return string(v) }

// ParseTemplateCategory returns the TemplateCategory for its wire value.
func ParseTemplateCategory(s string) (TemplateCategory, error) { return templateCategories.parse(s) }

// AllTemplateCategories lists every known TemplateCategory.
func AllTemplateCategories() []TemplateCategory { return templateCategories.all() }

// BucketSize is the time bucket of billing records.
type BucketSize string

const (
	BucketHour  BucketSize = "hour"
	BucketDay   BucketSize = "day"
	BucketWeek  BucketSize = "week"
	BucketMonth BucketSize = "month"
	BucketYear  BucketSize = "year"
)

var bucketSizes = newEnumTable("bucket size", BucketHour, BucketDay, BucketWeek, BucketMonth, BucketYear)

func (v BucketSize) String() string { return string(v) }

// ParseBucketSize returns the BucketSize for its wire value.
func ParseBucketSize(s string) (BucketSize, error) { return bucketSizes.parse(s) }

// AllBucketSizes lists every known BucketSize.
func AllBucketSizes() []BucketSize { return bucketSizes.all() }

// BillingGrouping groups billing records by resource.
type BillingGrouping string

const (
	GroupByPodID      BillingGrouping = "podId"
	GroupByEndpointID BillingGrouping = "endpointId"
	GroupByGPUTypeID  BillingGrouping = "gpuTypeId"
)

var billingGroupings = newEnumTable("billing grouping", GroupByPodID, GroupByEndpointID, GroupByGPUTypeID)

func (v BillingGrouping) String() string { return string(v) }

// ParseBillingGrouping returns the BillingGrouping for its wire value.
func ParseBillingGrouping(s string) (BillingGrouping, error) { return billingGroupings.parse(s) }

// AllBillingGroupings lists every known BillingGrouping.
func AllBillingGroupings() []BillingGrouping { return billingGroupings.all() }

// JobStatus is the state of a serverless job.
type JobStatus string

const (
	JobInQueue    JobStatus = "IN_QUEUE"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobCompleted  JobStatus = "COMPLETED"
	JobFailed     JobStatus = "FAILED"
	JobTimedOut   JobStatus = "TIMED_OUT"
	JobCancelled  JobStatus = "CANCELLED"
)

var jobStatuses = newEnumTable("job status",
	JobInQueue, JobInProgress, JobCompleted, JobFailed, JobTimedOut, JobCancelled)

func (v JobStatus) String() string { return string(v) }

// IsFinal reports whether the job will not change status anymore.
func (v JobStatus) IsFinal() bool {
	switch v {
	case JobCompleted, JobFailed, JobTimedOut, JobCancelled:
		return true
	}
	return false
}

// IsCompleted reports whether the job finished successfully.
func (v JobStatus) IsCompleted() bool { return v == JobCompleted }

// ParseJobStatus returns the JobStatus for its wire value.
func ParseJobStatus(s string) (JobStatus, error) { return jobStatuses.parse(s) }

// AllJobStatuses lists every known JobStatus.
func AllJobStatuses() []JobStatus { return jobStatuses.all() }
