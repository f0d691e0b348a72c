package runpod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomblancdev/runpod-go"
)

// TestPods_Create tests creating a pod with a minimal input.
//
// It verifies that:
//   - The client POSTs to /pods
//   - Only the fields that were set are serialized
//   - The response is mapped into a Pod
func TestPods_Create(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pods", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var body map[string]interface{}
		mustDecode(r, &body)
		assert.Equal(t, map[string]interface{}{"name": "test", "gpuCount": float64(1)}, body)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":            "pod-123",
			"desiredStatus": "RUNNING",
		})
	}))
	defer server.Close()

	// Act
	client := newTestClient(t, server.URL)
	pod, err := client.Pods().Create(context.Background(), &runpod.PodCreateInput{
		Name:     runpod.String("test"),
		GPUCount: runpod.Int(1),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pod-123", pod.ID)
	assert.Equal(t, runpod.PodStatusRunning, pod.DesiredStatus)
	assert.Nil(t, pod.Name)
}

func TestPods_Create_FullInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		mustDecode(r, &body)

		assert.Equal(t, "SECURE", body["cloudType"])
		assert.Equal(t, "GPU", body["computeType"])
		assert.Equal(t, []interface{}{"NVIDIA GeForce RTX 4090", "NVIDIA A40"}, body["gpuTypeIds"])
		assert.Equal(t, []interface{}{"EU-RO-1"}, body["dataCenterIds"])
		assert.Equal(t, []interface{}{"12.4"}, body["allowedCudaVersions"])
		assert.Equal(t, map[string]interface{}{"HF_TOKEN": "secret"}, body["env"])
		assert.Equal(t, []interface{}{"8888/http", "22/tcp"}, body["ports"])
		assert.Equal(t, float64(8), body["minRAMPerGPU"])
		assert.Equal(t, false, body["interruptible"])

		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "pod-1", "desiredStatus": "RUNNING"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Pods().Create(context.Background(), &runpod.PodCreateInput{
		CloudType:           runpod.Ptr(runpod.CloudTypeSecure),
		ComputeType:         runpod.Ptr(runpod.ComputeTypeGPU),
		GPUTypeIDs:          []runpod.GPUTypeID{runpod.GPUNvidiaGeForceRTX4090, runpod.GPUNvidiaA40},
		DataCenterIDs:       []runpod.DataCenterID{runpod.DataCenterEURO1},
		AllowedCUDAVersions: []runpod.CUDAVersion{runpod.CUDA12_4},
		Env:                 runpod.EnvVars{"HF_TOKEN": "secret"},
		Ports:               []string{"8888/http", "22/tcp"},
		MinRAMPerGPU:        runpod.Int(8),
		Interruptible:       runpod.Bool(false),
	})

	require.NoError(t, err)
}

// TestPods_Create_Invalid tests that bad inputs never reach the server.
func TestPods_Create_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input *runpod.PodCreateInput
	}{
		{name: "nil input", input: nil},
		{name: "unknown cloud type", input: &runpod.PodCreateInput{CloudType: runpod.Ptr(runpod.CloudType("PRIVATE"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("request should not be sent")
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			pod, err := client.Pods().Create(context.Background(), tt.input)

			assert.Nil(t, pod)
			requireKind(t, err, runpod.KindInvalidRequest)
			assert.ErrorIs(t, err, runpod.ErrInvalidRequest)
		})
	}
}

// TestPods_Create_ValuesLeftToServer tests that numeric values are sent as
// given and judged by the API.
func TestPods_Create_ValuesLeftToServer(t *testing.T) {
	// Arrange
	var hit atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit.Store(true)
		var body map[string]interface{}
		mustDecode(r, &body)
		assert.Equal(t, "CPU", body["computeType"])
		assert.Equal(t, float64(0), body["gpuCount"])
		assert.Equal(t, float64(0), body["containerDiskInGb"])

		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "gpuCount must be at least 1"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	// Act
	pod, err := client.Pods().Create(context.Background(), &runpod.PodCreateInput{
		ComputeType:       runpod.Ptr(runpod.ComputeTypeCPU),
		GPUCount:          runpod.Int(0),
		ContainerDiskInGB: runpod.Int(0),
	})

	// Assert
	assert.True(t, hit.Load(), "request should reach the server")
	assert.Nil(t, pod)
	apiErr := requireKind(t, err, runpod.KindAPI)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.ErrorIs(t, err, runpod.ErrBadRequest)
}

// TestPods_Get tests field-for-field mapping of a full pod.
func TestPods_Get(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pods/pod-abc", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "true", r.URL.Query().Get("includeMachine"))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":                "pod-abc",
			"name":              "trainer",
			"image":             "runpod/pytorch:latest",
			"consumerUserId":    "user-1",
			"machineId":         "machine-1",
			"desiredStatus":     "EXITED",
			"costPerHr":         0.69,
			"adjustedCostPerHr": 0.59,
			"gpuCount":          2,
			"vcpuCount":         16,
			"memoryInGb":        62,
			"containerDiskInGb": 50,
			"volumeInGb":        20,
			"volumeMountPath":   "/workspace",
			"volumeEncrypted":   false,
			"ports":             []string{"8888/http"},
			"portMappings":      map[string]int{"22": 10341},
			"publicIp":          "100.65.0.1",
			"env":               map[string]string{"FOO": "bar"},
			"interruptible":     true,
			"locked":            false,
			"gpu":               map[string]interface{}{"id": "NVIDIA A40", "count": 2, "displayName": "A40"},
			"machine": map[string]interface{}{
				"location":        "RO",
				"dataCenterId":    "EU-RO-1",
				"supportPublicIp": true,
				"secureCloud":     true,
				"costPerHr":       0.69,
				"gpuTypeId":       "NVIDIA A40",
			},
			"networkVolume": map[string]interface{}{"id": "vol-1", "name": "data", "size": 100, "dataCenterId": "EU-RO-1"},
			"savingsPlans":  []map[string]interface{}{{"id": "sp-1", "podId": "pod-abc", "gpuTypeId": "NVIDIA A40", "costPerHr": 0.4, "startTime": "2024-01-01T00:00:00Z", "endTime": "2024-02-01T00:00:00Z"}},
		})
	}))
	defer server.Close()

	// Act
	client := newTestClient(t, server.URL)
	pod, err := client.Pods().Get(context.Background(), "pod-abc", &runpod.GetPodQuery{
		IncludeMachine: runpod.Bool(true),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pod-abc", pod.ID)
	assert.Equal(t, "trainer", runpod.StringValue(pod.Name))
	assert.Equal(t, "runpod/pytorch:latest", pod.Image)
	assert.Equal(t, "user-1", pod.ConsumerUserID)
	assert.Equal(t, "machine-1", pod.MachineID)
	assert.Equal(t, runpod.PodStatusExited, pod.DesiredStatus)
	assert.InDelta(t, 0.69, pod.CostPerHr, 1e-9)
	assert.InDelta(t, 0.59, pod.AdjustedCostPerHr, 1e-9)
	assert.Equal(t, 2, runpod.IntValue(pod.GPUCount))
	assert.InDelta(t, 16, pod.VCPUCount, 1e-9)
	assert.InDelta(t, 62, pod.MemoryInGB, 1e-9)
	assert.Equal(t, 50, pod.ContainerDiskInGB)
	assert.Equal(t, 20, runpod.IntValue(pod.VolumeInGB))
	assert.Equal(t, "/workspace", runpod.StringValue(pod.VolumeMountPath))
	assert.Equal(t, []string{"8888/http"}, pod.Ports)
	assert.Equal(t, map[string]int{"22": 10341}, pod.PortMappings)
	assert.Equal(t, "100.65.0.1", runpod.StringValue(pod.PublicIP))
	assert.Equal(t, runpod.EnvVars{"FOO": "bar"}, pod.Env)
	assert.True(t, pod.Interruptible)
	require.NotNil(t, pod.GPU)
	assert.Equal(t, 2, pod.GPU.Count)
	require.NotNil(t, pod.Machine)
	assert.Equal(t, "EU-RO-1", pod.Machine.DataCenterID)
	assert.True(t, pod.Machine.SecureCloud)
	require.NotNil(t, pod.NetworkVolume)
	assert.Equal(t, 100, pod.NetworkVolume.Size)
	require.Len(t, pod.SavingsPlans, 1)
	assert.Equal(t, "sp-1", pod.SavingsPlans[0].ID)
	assert.Nil(t, pod.TemplateID)
}

func TestPods_Get_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pod not found"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	pod, err := client.Pods().Get(context.Background(), "missing", nil)

	assert.Nil(t, pod)
	assert.True(t, runpod.IsNotFound(err))
}

// TestPods_List_Query tests the query parameters built from ListPodsQuery.
func TestPods_List_Query(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/pods", r.URL.Path)
		assert.Equal(t, "GPU", q.Get("computeType"))
		assert.Equal(t, "RUNNING", q.Get("desiredStatus"))
		assert.Equal(t, []string{"NVIDIA A40", "NVIDIA L40S"}, q["gpuTypeId"])
		assert.Equal(t, []string{"EU-RO-1", "US-TX-3"}, q["dataCenterId"])
		assert.Equal(t, "true", q.Get("includeMachine"))
		assert.False(t, q.Has("name"), "unset fields are omitted")

		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"id": "pod-1", "desiredStatus": "RUNNING"},
			{"id": "pod-2", "desiredStatus": "RUNNING"},
		})
	}))
	defer server.Close()

	// Act
	client := newTestClient(t, server.URL)
	pods, err := client.Pods().List(context.Background(), &runpod.ListPodsQuery{
		ComputeType:    runpod.Ptr(runpod.ComputeTypeGPU),
		DesiredStatus:  runpod.Ptr(runpod.PodStatusRunning),
		GPUTypeID:      []runpod.GPUTypeID{runpod.GPUNvidiaA40, runpod.GPUNvidiaL40S},
		DataCenterID:   []runpod.DataCenterID{runpod.DataCenterEURO1, runpod.DataCenterUSTX3},
		IncludeMachine: runpod.Bool(true),
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, pods, 2)
	assert.Equal(t, "pod-2", pods[1].ID)
}

func TestPods_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pods/pod-1", r.URL.Path)
		assert.Equal(t, http.MethodPatch, r.Method)

		var body map[string]interface{}
		mustDecode(r, &body)
		assert.Equal(t, map[string]interface{}{"name": "renamed", "volumeInGb": float64(40)}, body)

		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "pod-1", "name": "renamed", "volumeInGb": 40, "desiredStatus": "RUNNING"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	pod, err := client.Pods().Update(context.Background(), "pod-1", &runpod.PodUpdateInput{
		Name:       runpod.String("renamed"),
		VolumeInGB: runpod.Int(40),
	})

	require.NoError(t, err)
	assert.Equal(t, "renamed", runpod.StringValue(pod.Name))
	assert.Equal(t, 40, runpod.IntValue(pod.VolumeInGB))
}

// TestPods_Actions tests the lifecycle calls that return no body.
func TestPods_Actions(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		call   func(*runpod.PodService, context.Context, string) error
	}{
		{name: "start", method: http.MethodPost, path: "/pods/pod-1/start", call: (*runpod.PodService).Start},
		{name: "stop", method: http.MethodPost, path: "/pods/pod-1/stop", call: (*runpod.PodService).Stop},
		{name: "reset", method: http.MethodPost, path: "/pods/pod-1/reset", call: (*runpod.PodService).Reset},
		{name: "restart", method: http.MethodPost, path: "/pods/pod-1/restart", call: (*runpod.PodService).Restart},
		{name: "delete", method: http.MethodDelete, path: "/pods/pod-1", call: (*runpod.PodService).Delete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called atomic.Bool
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called.Store(true)
				assert.Equal(t, tt.path, r.URL.Path)
				assert.Equal(t, tt.method, r.Method)
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			err := tt.call(client.Pods(), context.Background(), "pod-1")

			require.NoError(t, err)
			assert.True(t, called.Load())
		})
	}
}

func TestPods_EmptyID(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	ctx := context.Background()

	_, err := client.Pods().Get(ctx, "", nil)
	requireKind(t, err, runpod.KindInvalidRequest)

	_, err = client.Pods().Update(ctx, " ", &runpod.PodUpdateInput{})
	requireKind(t, err, runpod.KindInvalidRequest)

	err = client.Pods().Stop(ctx, "")
	requireKind(t, err, runpod.KindInvalidRequest)
}

// TestPods_RoundTrip tests that an input echoed back by the server decodes
// to the same values.
func TestPods_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		mustDecode(r, &body)
		body["id"] = "pod-echo"
		body["image"] = body["imageName"]
		writeJSON(w, http.StatusOK, body)
	}))
	defer server.Close()

	input := &runpod.PodCreateInput{
		Name:              runpod.String("echo"),
		ImageName:         runpod.String("ubuntu:22.04"),
		GPUCount:          runpod.Int(2),
		ContainerDiskInGB: runpod.Int(30),
		VolumeInGB:        runpod.Int(10),
		VolumeMountPath:   runpod.String("/data"),
		Env:               runpod.EnvVars{"A": "1"},
		Ports:             []string{"22/tcp"},
		DockerStartCmd:    []string{"sleep", "infinity"},
		Interruptible:     runpod.Bool(true),
		TemplateID:        runpod.String("tpl-1"),
	}

	client := newTestClient(t, server.URL)
	pod, err := client.Pods().Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "pod-echo", pod.ID)
	assert.Equal(t, input.Name, pod.Name)
	assert.Equal(t, *input.ImageName, pod.Image)
	assert.Equal(t, input.GPUCount, pod.GPUCount)
	assert.Equal(t, *input.ContainerDiskInGB, pod.ContainerDiskInGB)
	assert.Equal(t, input.VolumeInGB, pod.VolumeInGB)
	assert.Equal(t, input.VolumeMountPath, pod.VolumeMountPath)
	assert.Equal(t, input.Env, pod.Env)
	assert.Equal(t, input.Ports, pod.Ports)
	assert.Equal(t, input.DockerStartCmd, pod.DockerStartCmd)
	assert.Equal(t, *input.Interruptible, pod.Interruptible)
	assert.Equal(t, input.TemplateID, pod.TemplateID)
}
