// Package runpod provides a Go SDK for the RunPod API.
//
// RunPod rents GPU and CPU compute as pods and as autoscaling serverless
// endpoints. This SDK covers the management REST API (pods, endpoints,
// templates, network volumes, registry credentials, billing), the
// serverless job API and raw GraphQL queries.
//
// # Installation
//
//	go get github.com/tomblancdev/runpod-go
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/tomblancdev/runpod-go"
//	)
//
//	func main() {
//	    // Reads RUNPOD_API_KEY and the optional RUNPOD_* overrides
//	    client, err := runpod.NewClientFromEnv()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pods, err := client.Pods().List(context.Background(), nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, pod := range pods {
//	        fmt.Println(pod.ID, pod.DesiredStatus)
//	    }
//	}
//
// # Client Configuration
//
// A [Config] is validated once by [NewConfig], [ConfigFromEnv] or
// [ConfigFromDotEnv] and never changes afterwards. Behavior that does not
// belong to the account is set with functional options:
//
//	cfg, err := runpod.NewConfig(runpod.ConfigParams{
//	    APIKey:  key,
//	    Timeout: time.Minute,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := runpod.NewClient(cfg,
//	    runpod.WithHTTPClient(customHTTPClient),
//	    runpod.WithLogger(zerolog.New(os.Stderr)),
//	)
//
// # Error Handling
//
// Every error returned by the SDK is a [*Error] tagged with an [ErrorKind]:
//
//	pod, err := client.Pods().Get(ctx, "pod-123", nil)
//	switch {
//	case runpod.IsNotFound(err):
//	    // Pod does not exist
//	case runpod.IsTransport(err):
//	    // Network problem or timeout, the server may not have seen the call
//	case err != nil:
//	    var apiErr *runpod.Error
//	    if errors.As(err, &apiErr) {
//	        log.Printf("%s: %s", apiErr.Code, apiErr.Message)
//	    }
//	}
//
// Requests are sent exactly once. The SDK never retries.
//
// # Serverless Jobs
//
//	job, err := client.Serverless("my-endpoint").Run(ctx, map[string]any{"prompt": "hi"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := job.Wait(ctx, time.Second)
//
// # Thread Safety
//
// The [Client] and its services are safe for concurrent use by multiple
// goroutines. A [JobStream] must be consumed by one goroutine.
//
// # API Version Compatibility
//
// This SDK version targets RunPod REST API v1. Use [IsCompatible] to check
// another version against [APIVersionRange].
package runpod
