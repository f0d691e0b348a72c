package runpod

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// DefaultPollInterval is used by [Job.Wait] and [Job.Stream] when no
// positive interval is given.
const DefaultPollInterval = time.Second

// JobResult is the state of a serverless job as reported by the API.
type JobResult struct {
	ID     string          `json:"id"`
	Status JobStatus       `json:"status"`
	Output json.RawMessage `json:"output,omitempty"`
	// Error is whatever the worker reported: usually a string, but handlers
	// may return an object. See [JobResult.ErrorMessage].
	Error json.RawMessage `json:"error,omitempty"`

	// DelayTime is how long the job waited in the queue, in milliseconds.
	DelayTime int64 `json:"delayTime,omitempty"`
	// ExecutionTime is how long the worker ran the job, in milliseconds.
	ExecutionTime int64 `json:"executionTime,omitempty"`
}

// DecodeOutput decodes the job output into out.
func (r *JobResult) DecodeOutput(out interface{}) error {
	if len(r.Output) == 0 || string(r.Output) == "null" {
		return newError(KindDecode, "serverless.output", "DECODE", "job has no output", 0, nil)
	}
	if err := json.Unmarshal(r.Output, out); err != nil {
		return &Error{
			Kind:    KindDecode,
			Op:      "serverless.output",
			Code:    "DECODE",
			Message: "invalid job output",
			Body:    truncate(r.Output, maxErrorBodySize),
			Cause:   err,
		}
	}
	return nil
}

// ErrorMessage returns the job error as text: a string error unquoted,
// anything else as compact JSON, or "" when the job reported none.
func (r *JobResult) ErrorMessage() string {
	if len(r.Error) == 0 || string(r.Error) == "null" {
		return ""
	}
	var msg string
	if err := json.Unmarshal(r.Error, &msg); err == nil {
		return msg
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, r.Error); err != nil {
		return string(r.Error)
	}
	return buf.String()
}

// StreamChunk is one piece of incremental output from a streaming worker.
type StreamChunk struct {
	Output json.RawMessage `json:"output"`
}

type streamResponse struct {
	Status JobStatus     `json:"status"`
	Stream []StreamChunk `json:"stream"`
}

// EndpointHealth reports queue and worker counts of an endpoint.
type EndpointHealth struct {
	Jobs    JobStats    `json:"jobs"`
	Workers WorkerStats `json:"workers"`
}

// JobStats counts jobs by state.
type JobStats struct {
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	InProgress int `json:"inProgress"`
	InQueue    int `json:"inQueue"`
	Retried    int `json:"retried"`
}

// WorkerStats counts workers by state.
type WorkerStats struct {
	Idle         int `json:"idle"`
	Initializing int `json:"initializing"`
	Ready        int `json:"ready"`
	Running      int `json:"running"`
	Throttled    int `json:"throttled"`
}

type runRequest struct {
	Input interface{} `json:"input"`
}

// EndpointRunner submits jobs to one serverless endpoint. Get one from
// [Client.Serverless].
//
//	runner := client.Serverless("my-endpoint")
//	job, err := runner.Run(ctx, map[string]any{"prompt": "hello"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := job.Wait(ctx, time.Second)
type EndpointRunner struct {
	t          *Transport
	endpointID string
}

// EndpointID returns the endpoint this runner targets.
func (r *EndpointRunner) EndpointID() string { return r.endpointID }

// Run queues a job and returns immediately. input is sent as the job's
// "input" field.
func (r *EndpointRunner) Run(ctx context.Context, input interface{}) (*Job, error) {
	const op = "serverless.run"
	res, err := r.submit(ctx, op, "/{endpointId}/run", input)
	if err != nil {
		return nil, err
	}
	if res.ID == "" {
		return nil, newError(KindDecode, op, "DECODE", "response has no job ID", 0, nil)
	}
	return r.Job(res.ID), nil
}

// RunSync runs a job and waits for it server-side. If the job does not
// finish in time the result has a non-final status and can be followed up
// with r.Job(result.ID).Wait.
func (r *EndpointRunner) RunSync(ctx context.Context, input interface{}) (*JobResult, error) {
	return r.submit(ctx, "serverless.runsync", "/{endpointId}/runsync", input)
}

func (r *EndpointRunner) submit(ctx context.Context, op, path string, input interface{}) (*JobResult, error) {
	if err := requireID(op, "endpoint ID", r.endpointID); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, invalidRequest(op, "input is required", nil)
	}

	var res JobResult
	err := r.t.do(ctx, Request{
		Op:         op,
		Target:     TargetServerless,
		Method:     http.MethodPost,
		Path:       path,
		PathParams: map[string]string{"endpointId": r.endpointID},
		Body:       runRequest{Input: input},
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Job returns a handle for an existing job. No request is made.
func (r *EndpointRunner) Job(jobID string) *Job {
	return &Job{runner: r, id: jobID}
}

// Health returns queue and worker counts.
func (r *EndpointRunner) Health(ctx context.Context) (*EndpointHealth, error) {
	const op = "serverless.health"
	if err := requireID(op, "endpoint ID", r.endpointID); err != nil {
		return nil, err
	}

	var health EndpointHealth
	err := r.t.do(ctx, Request{
		Op:         op,
		Target:     TargetServerless,
		Method:     http.MethodGet,
		Path:       "/{endpointId}/health",
		PathParams: map[string]string{"endpointId": r.endpointID},
	}, &health)
	if err != nil {
		return nil, err
	}
	return &health, nil
}

// PurgeQueue drops every queued job. Running jobs are not affected.
func (r *EndpointRunner) PurgeQueue(ctx context.Context) error {
	const op = "serverless.purge"
	if err := requireID(op, "endpoint ID", r.endpointID); err != nil {
		return err
	}
	return r.t.do(ctx, Request{
		Op:         op,
		Target:     TargetServerless,
		Method:     http.MethodPost,
		Path:       "/{endpointId}/purge-queue",
		PathParams: map[string]string{"endpointId": r.endpointID},
	}, nil)
}

// Job is a handle for a submitted serverless job.
type Job struct {
	runner *EndpointRunner
	id     string
}

// ID returns the job ID.
func (j *Job) ID() string { return j.id }

// EndpointID returns the endpoint the job runs on.
func (j *Job) EndpointID() string { return j.runner.endpointID }

// Status fetches the current state of the job.
func (j *Job) Status(ctx context.Context) (*JobResult, error) {
	var res JobResult
	if err := j.call(ctx, "serverless.status", http.MethodGet, "/{endpointId}/status/{jobId}", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Output fetches the job state and decodes its output into out. It fails
// with a [KindDecode] error when the job has no output yet.
func (j *Job) Output(ctx context.Context, out interface{}) error {
	res, err := j.Status(ctx)
	if err != nil {
		return err
	}
	return res.DecodeOutput(out)
}

// Cancel stops the job if it has not finished.
func (j *Job) Cancel(ctx context.Context) (*JobResult, error) {
	var res JobResult
	if err := j.call(ctx, "serverless.cancel", http.MethodPost, "/{endpointId}/cancel/{jobId}", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Wait polls the job until it reaches a final status. A job that failed,
// timed out or was cancelled is returned without error; check
// [JobResult.Status].
func (j *Job) Wait(ctx context.Context, pollInterval time.Duration) (*JobResult, error) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		res, err := j.Status(ctx)
		if err != nil {
			return nil, err
		}
		if res.Status.IsFinal() {
			return res, nil
		}
		select {
		case <-ctx.Done():
			return nil, newError(KindTransport, "serverless.wait", "TRANSPORT", "waiting for job "+j.id, 0, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Stream polls the job's stream endpoint and yields output chunks as they
// arrive, until the job reaches a final status.
//
// Always Close the stream when done:
//
//	stream := job.Stream(ctx, 500*time.Millisecond)
//	defer stream.Close()
//
//	for stream.Next() {
//	    fmt.Println(string(stream.Chunk().Output))
//	}
//	if err := stream.Err(); err != nil {
//	    log.Fatal(err)
//	}
func (j *Job) Stream(ctx context.Context, pollInterval time.Duration) *JobStream {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	return &JobStream{job: j, ctx: ctx, cancel: cancel, interval: pollInterval}
}

func (j *Job) fetchStream(ctx context.Context) (*streamResponse, error) {
	var res streamResponse
	if err := j.call(ctx, "serverless.stream", http.MethodGet, "/{endpointId}/stream/{jobId}", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (j *Job) call(ctx context.Context, op, method, path string, out interface{}) error {
	if err := requireID(op, "endpoint ID", j.runner.endpointID); err != nil {
		return err
	}
	if err := requireID(op, "job ID", j.id); err != nil {
		return err
	}
	return j.runner.t.do(ctx, Request{
		Op:         op,
		Target:     TargetServerless,
		Method:     method,
		Path:       path,
		PathParams: map[string]string{"endpointId": j.runner.endpointID, "jobId": j.id},
	}, out)
}
