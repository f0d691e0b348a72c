//go:build e2e

// Package e2e provides end-to-end tests for the RunPod Go SDK.
//
// These tests run against the live RunPod API and are skipped unless an API
// key is available:
//
//	RUNPOD_API_KEY=rp_xxx go test -tags e2e ./tests/e2e/...
//
// The key may also come from a .env file at the repository root. Tests only
// read account state, except the serverless tests, which submit a job to the
// endpoint named by RUNPOD_E2E_ENDPOINT_ID and are skipped when it is unset.
package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tomblancdev/runpod-go"
)

const dotEnvFile = "../../.env"

// newTestClient creates a client from the environment, skipping the test
// when no API key is configured.
func newTestClient(t *testing.T) *runpod.Client {
	t.Helper()

	var (
		cfg *runpod.Config
		err error
	)
	if _, statErr := os.Stat(dotEnvFile); statErr == nil {
		cfg, err = runpod.ConfigFromDotEnv(dotEnvFile)
	} else {
		cfg, err = runpod.ConfigFromEnv()
	}
	if err != nil {
		t.Skipf("Skipping: %v", err)
	}

	client, err := runpod.NewClient(cfg)
	require.NoError(t, err)
	return client
}

// endpointID returns the serverless endpoint used for job tests.
func endpointID(t *testing.T) string {
	t.Helper()
	id := os.Getenv("RUNPOD_E2E_ENDPOINT_ID")
	if id == "" {
		t.Skip("Skipping: RUNPOD_E2E_ENDPOINT_ID not set")
	}
	return id
}

// newTestContext creates a context with a reasonable timeout for E2E tests.
func newTestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)
	return ctx
}
