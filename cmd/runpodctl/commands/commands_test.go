package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomblancdev/runpod-go"
)

// runCmd executes the root command against serverURL and returns its output.
func runCmd(t *testing.T, serverURL string, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{
		"--api-key", "rp_test_key_123456",
		"--rest-url", serverURL,
		"--api-url", serverURL,
		"--graphql-url", serverURL + "/graphql",
		"--timeout", "5s",
	}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("failed to encode response: " + err.Error())
	}
}

// unsetEnv removes keys from the environment for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { _ = os.Setenv(key, v) })
		}
	}
}

var podsJSON = []map[string]interface{}{
	{"id": "pod-1", "name": "trainer", "desiredStatus": "RUNNING", "costPerHr": 0.69, "image": "runpod/pytorch", "gpuCount": 1, "gpuTypeId": "NVIDIA GeForce RTX 4090"},
	{"id": "pod-2", "name": "idle", "desiredStatus": "EXITED", "costPerHr": 0.44, "image": "runpod/base"},
}

func TestPodsList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pods", r.URL.Path)
		assert.Equal(t, "Bearer rp_test_key_123456", r.Header.Get("Authorization"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "runpodctl/"))
		writeJSON(w, http.StatusOK, podsJSON)
	}))
	defer server.Close()

	t.Run("table", func(t *testing.T) {
		out, err := runCmd(t, server.URL, "", "pods", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "pod-1")
		assert.Contains(t, out, "trainer")
		assert.Contains(t, out, "1x NVIDIA GeForce RTX 4090")
		assert.Contains(t, out, "$0.690")
		assert.Contains(t, out, "EXITED")
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCmd(t, server.URL, "", "-o", "json", "pods", "list")
		require.NoError(t, err)

		var pods []runpod.Pod
		require.NoError(t, json.Unmarshal([]byte(out), &pods))
		require.Len(t, pods, 2)
		assert.Equal(t, runpod.PodStatusExited, pods[1].DesiredStatus)
	})
}

func TestPodsList_Filters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "RUNNING", q.Get("desiredStatus"))
		assert.Equal(t, []string{"NVIDIA A40", "NVIDIA L40S"}, q["gpuTypeId"])
		writeJSON(w, http.StatusOK, []interface{}{})
	}))
	defer server.Close()

	out, err := runCmd(t, server.URL, "", "pods", "list", "--status", "RUNNING",
		"--gpu-type", "NVIDIA A40", "--gpu-type", "NVIDIA L40S")

	require.NoError(t, err)
	assert.Contains(t, out, "No resources found")
}

func TestPodsList_InvalidStatus(t *testing.T) {
	_, err := runCmd(t, "http://127.0.0.1:1", "", "pods", "list", "--status", "SLEEPING")

	require.Error(t, err)
	var rpErr *runpod.Error
	require.ErrorAs(t, err, &rpErr)
	assert.Equal(t, runpod.KindInvalidRequest, rpErr.Kind)
}

func TestPodsCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pods", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{
			"name":       "trainer",
			"imageName":  "runpod/pytorch",
			"gpuTypeIds": []interface{}{"NVIDIA A40"},
			"gpuCount":   float64(2),
			"cloudType":  "SECURE",
			"ports":      []interface{}{"8888/http"},
			"env":        map[string]interface{}{"HF_TOKEN": "abc"},
		}, body)

		writeJSON(w, http.StatusOK, podsJSON[0])
	}))
	defer server.Close()

	out, err := runCmd(t, server.URL, "", "pods", "create",
		"--name", "trainer",
		"--image", "runpod/pytorch",
		"--gpu-type", "NVIDIA A40",
		"--gpu-count", "2",
		"--cloud-type", "SECURE",
		"--port", "8888/http",
		"--env", "HF_TOKEN=abc",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "pod-1")
}

func TestPodActions(t *testing.T) {
	tests := []struct {
		action string
		method string
		path   string
		result string
	}{
		{"start", http.MethodPost, "/pods/pod-1/start", "started"},
		{"stop", http.MethodPost, "/pods/pod-1/stop", "stopped"},
		{"reset", http.MethodPost, "/pods/pod-1/reset", "reset"},
		{"restart", http.MethodPost, "/pods/pod-1/restart", "restarted"},
		{"delete", http.MethodDelete, "/pods/pod-1", "deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.method, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			out, err := runCmd(t, server.URL, "", "pods", tt.action, "pod-1")

			require.NoError(t, err)
			assert.Equal(t, "pod-1 "+tt.result+"\n", out)
		})
	}
}

func TestPodActions_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pod not found"})
	}))
	defer server.Close()

	_, err := runCmd(t, server.URL, "", "pods", "stop", "pod-404")

	require.Error(t, err)
	assert.True(t, runpod.IsNotFound(err))
}

func TestVolumesCreate_RequiredFlags(t *testing.T) {
	_, err := runCmd(t, "http://127.0.0.1:1", "", "volumes", "create", "--name", "data")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestRegistryCreate_PasswordStdin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "s3cret", body["password"])
		writeJSON(w, http.StatusOK, map[string]string{"id": "cra-1", "name": "ghcr"})
	}))
	defer server.Close()

	out, err := runCmd(t, server.URL, "s3cret\n", "registry", "create", "--name", "ghcr", "--username", "bot", "--password-stdin")

	require.NoError(t, err)
	assert.Contains(t, out, "cra-1")
	assert.NotContains(t, out, "s3cret")
}

func TestBillingPods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/billing/pods", r.URL.Path)
		assert.Equal(t, "day", q.Get("bucketSize"))
		assert.Equal(t, "gpuTypeId", q.Get("grouping"))
		assert.Equal(t, "2024-01-01T00:00:00Z", q.Get("startTime"))
		assert.Equal(t, "2024-01-03T00:00:00Z", q.Get("endTime"))
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"amount": 1.5, "gpuTypeId": "NVIDIA A40", "time": "2024-01-01T00:00:00Z"},
			{"amount": 2.25, "gpuTypeId": "NVIDIA A40", "time": "2024-01-02T00:00:00Z"},
		})
	}))
	defer server.Close()

	out, err := runCmd(t, server.URL, "", "billing", "pods",
		"--group-by", "gpuTypeId",
		"--start", "2024-01-01T00:00:00Z",
		"--end", "2024-01-03T00:00:00Z",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-02T00:00:00Z")
	assert.Contains(t, out, "$3.750")
}

func TestBillingFlags_Parse(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	f := billingFlags{bucket: "hour", since: 24 * time.Hour}
	bucket, grouping, start, end, err := f.parse(now)
	require.NoError(t, err)
	assert.Equal(t, runpod.BucketHour, *bucket)
	assert.Nil(t, grouping)
	assert.Equal(t, now.Add(-24*time.Hour), *start)
	assert.Equal(t, now, *end)

	f = billingFlags{bucket: "day", start: "2024-06-11T00:00:00Z"}
	_, _, _, _, err = f.parse(now)
	assert.Error(t, err, "start after end")

	f = billingFlags{bucket: "fortnight"}
	_, _, _, _, err = f.parse(now)
	assert.Error(t, err)
}

func TestServerlessRun_Wait(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ep-1/run":
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]interface{}{"input": map[string]interface{}{"prompt": "fox"}}, body)
			writeJSON(w, http.StatusOK, map[string]string{"id": "job-1", "status": "IN_QUEUE"})
		case "/ep-1/status/job-1":
			writeJSON(w, http.StatusOK, map[string]interface{}{"id": "job-1", "status": "COMPLETED", "output": "ok", "executionTime": 42})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	out, err := runCmd(t, server.URL, "", "serverless", "run", "ep-1",
		"--input", `{"prompt": "fox"}`, "--wait", "--poll-interval", "1ms")

	require.NoError(t, err)
	assert.Contains(t, out, "job-1")
	assert.Contains(t, out, "COMPLETED")
	assert.Contains(t, out, "42")
}

func TestServerlessStatus_FailedJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ep-1/status/job-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"job-1","status":"FAILED","error":{"error_type":"ValueError","error_message":"boom"}}`))
	}))
	defer server.Close()

	out, err := runCmd(t, server.URL, "", "serverless", "status", "ep-1", "job-1")

	require.NoError(t, err)
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, `{"error_type":"ValueError",`)
}

func TestEllipsize(t *testing.T) {
	assert.Equal(t, "short", ellipsize("short", 60))
	assert.Equal(t, "abcdefg...", ellipsize("abcdefghijklmnop", 10))

	long := strings.Repeat("é", 70)
	got := ellipsize(long, 60)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 60, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("é", 57)+"...", got)
}

func TestServerlessRun_Queued(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"id": "job-9", "status": "IN_QUEUE"})
	}))
	defer server.Close()

	out, err := runCmd(t, server.URL, "", "-o", "json", "serverless", "run", "ep-1")

	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "job-9", "result": "queued"}`, out)
}

func TestServerlessRun_InvalidInput(t *testing.T) {
	_, err := runCmd(t, "http://127.0.0.1:1", "", "serverless", "run", "ep-1", "--input", "{not json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestServerlessRun_Stream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ep-1/run":
			writeJSON(w, http.StatusOK, map[string]string{"id": "job-1", "status": "IN_QUEUE"})
		case "/ep-1/stream/job-1":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"status": "COMPLETED",
				"stream": []map[string]interface{}{{"output": "one"}, {"output": "two"}},
			})
		}
	}))
	defer server.Close()

	out, err := runCmd(t, server.URL, "", "serverless", "run", "ep-1", "--stream")

	require.NoError(t, err)
	assert.Contains(t, out, "\"one\"\n\"two\"\n")
	assert.Contains(t, out, "job-1 COMPLETED")
}

func TestStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pods":
			writeJSON(w, http.StatusOK, podsJSON)
		case "/endpoints":
			writeJSON(w, http.StatusOK, []map[string]string{{"id": "ep-1"}})
		case "/templates":
			writeJSON(w, http.StatusOK, []map[string]string{{"id": "t-1"}, {"id": "t-2"}, {"id": "t-3"}})
		case "/networkvolumes":
			writeJSON(w, http.StatusOK, []map[string]interface{}{{"id": "v-1", "size": 100}, {"id": "v-2", "size": 50}})
		case "/containerregistryauth":
			writeJSON(w, http.StatusOK, []interface{}{})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	out, err := runCmd(t, server.URL, "", "-o", "json", "status")
	require.NoError(t, err)

	var status accountStatus
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, 2, status.Pods)
	assert.Equal(t, 1, status.RunningPods)
	assert.InDelta(t, 0.69, status.CostPerHr, 1e-9)
	assert.Equal(t, 1, status.Endpoints)
	assert.Equal(t, 3, status.Templates)
	assert.Equal(t, 2, status.NetworkVolumes)
	assert.Equal(t, 150, status.NetworkStorage)
	assert.Equal(t, 0, status.RegistryAuths)
}

func TestStatus_PartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/templates" {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
			return
		}
		writeJSON(w, http.StatusOK, []interface{}{})
	}))
	defer server.Close()

	_, err := runCmd(t, server.URL, "", "status")

	require.Error(t, err)
	var rpErr *runpod.Error
	require.ErrorAs(t, err, &rpErr)
	assert.Equal(t, http.StatusInternalServerError, rpErr.Status)
}

func TestVersion_NoAPIKeyNeeded(t *testing.T) {
	unsetEnv(t, runpod.EnvAPIKey)

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "runpodctl "+runpod.Version)
	assert.Contains(t, out.String(), runpod.APIVersionRange)
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := runCmd(t, "http://127.0.0.1:1", "", "-o", "yaml", "pods", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestConfig_Precedence(t *testing.T) {
	unsetEnv(t, runpod.EnvAPIKey, runpod.EnvRESTURL, runpod.EnvBaseURL, runpod.EnvAPIURL, runpod.EnvGraphQLURL, runpod.EnvTimeoutSecs)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"RUNPOD_API_KEY=from_file_key\nRUNPOD_BASE_URL=https://file.example.com/v1\nRUNPOD_TIMEOUT_SECS=12\n"), 0o600))
	t.Setenv(runpod.EnvAPIURL, "https://env.example.com/v2")

	a := &app{envFile: envFile, output: outputTable, restURL: "https://flag.example.com/v1"}
	require.NoError(t, a.setup(NewRootCmd(), nil))

	p, err := a.configParams()
	require.NoError(t, err)
	assert.Equal(t, "from_file_key", p.APIKey)
	assert.Equal(t, "https://flag.example.com/v1", p.RESTURL, "flag wins over env file")
	assert.Equal(t, "https://env.example.com/v2", p.APIURL, "process env is read")
	assert.Equal(t, 12*time.Second, p.Timeout)
}

func TestConfig_MissingAPIKey(t *testing.T) {
	unsetEnv(t, runpod.EnvAPIKey)

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--rest-url", "http://127.0.0.1:1", "pods", "list"})
	err := cmd.Execute()

	require.Error(t, err)
	var rpErr *runpod.Error
	require.ErrorAs(t, err, &rpErr)
	assert.Equal(t, runpod.KindConfig, rpErr.Kind)
}

func TestDebugLogging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []interface{}{})
	}))
	defer server.Close()

	out, err := runCmd(t, server.URL, "", "--debug", "volumes", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "using config")
	assert.NotContains(t, out, "rp_test_key_123456", "API key must be masked")
}
