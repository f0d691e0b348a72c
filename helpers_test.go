package runpod_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tomblancdev/runpod-go"
)

const testAPIKey = "rp_test_key_123456"

// mustEncode encodes v as JSON and writes it to w.
// Panics on error - safe in tests since errors indicate test bugs.
func mustEncode(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("failed to encode response: " + err.Error())
	}
}

// mustDecode decodes JSON from r.Body into v.
// Panics on error - safe in tests since errors indicate test bugs.
func mustDecode(r *http.Request, v interface{}) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		panic("failed to decode request: " + err.Error())
	}
}

// writeJSON sets the JSON content type, the status and the body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	mustEncode(w, v)
}

// newTestClient points every API of a client at baseURL.
func newTestClient(t *testing.T, baseURL string, opts ...runpod.Option) *runpod.Client {
	t.Helper()
	cfg, err := runpod.NewConfig(runpod.ConfigParams{
		APIKey:     testAPIKey,
		RESTURL:    baseURL,
		APIURL:     baseURL,
		GraphQLURL: baseURL + "/graphql",
		Timeout:    5 * time.Second,
	})
	require.NoError(t, err)
	client, err := runpod.NewClient(cfg, opts...)
	require.NoError(t, err)
	return client
}

// requireKind asserts err is a *runpod.Error of the given kind and returns it.
func requireKind(t *testing.T, err error, kind runpod.ErrorKind) *runpod.Error {
	t.Helper()
	require.Error(t, err)
	var rpErr *runpod.Error
	require.ErrorAs(t, err, &rpErr)
	require.Equal(t, kind, rpErr.Kind, "unexpected error: %v", err)
	return rpErr
}

// safeBuffer is a bytes.Buffer usable as a log sink from several goroutines.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
