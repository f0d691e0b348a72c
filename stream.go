package runpod

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// JobStream yields the incremental output of a streaming serverless job.
//
// Use [Job.Stream] to create a stream, then iterate over chunks:
//
//	stream := job.Stream(ctx, time.Second)
//	defer stream.Close()
//
//	for stream.Next() {
//	    fmt.Print(string(stream.Chunk().Output))
//	}
//
//	if err := stream.Err(); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("final status:", stream.Status())
type JobStream struct {
	job      *Job
	ctx      context.Context
	cancel   context.CancelFunc
	interval time.Duration

	pending []StreamChunk
	current *StreamChunk
	status  JobStatus
	polled  bool
	done    bool
	err     error
	closed  atomic.Bool
}

// Next advances to the next chunk, polling the API when no chunk is
// buffered.
//
// Returns false once the job reached a final status and every chunk was
// consumed, or when an error occurred. Call [JobStream.Err] to check for
// errors.
func (s *JobStream) Next() bool {
	for {
		if s.closed.Load() || s.err != nil {
			return false
		}
		if len(s.pending) > 0 {
			chunk := s.pending[0]
			s.pending = s.pending[1:]
			s.current = &chunk
			return true
		}
		if s.done {
			return false
		}
		if err := s.poll(); err != nil {
			if !s.closed.Load() {
				s.err = err
			}
			return false
		}
	}
}

func (s *JobStream) poll() error {
	if s.polled {
		timer := time.NewTimer(s.interval)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			return newError(KindTransport, "serverless.stream", "TRANSPORT", "stream cancelled", 0, s.ctx.Err())
		case <-timer.C:
		}
	}
	s.polled = true

	res, err := s.job.fetchStream(s.ctx)
	if err != nil {
		return err
	}
	s.status = res.Status
	s.pending = append(s.pending, res.Stream...)
	if res.Status.IsFinal() {
		s.done = true
	}
	return nil
}

// Chunk returns the current chunk. Call this after [JobStream.Next] returns
// true.
func (s *JobStream) Chunk() *StreamChunk {
	return s.current
}

// Status returns the job status seen on the last poll.
func (s *JobStream) Status() JobStatus {
	return s.status
}

// Err returns the error that stopped the stream, if any.
func (s *JobStream) Err() error {
	return s.err
}

// Close stops polling and cancels any request in flight. It is safe to call
// multiple times and from another goroutine.
func (s *JobStream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.cancel()
	return nil
}

// ChunksWithContext returns a channel that yields chunks from the stream.
//
// The channel is closed when the job finishes, an error occurs or ctx is
// cancelled. Check [JobStream.Err] after the channel closes.
//
//	for chunk := range stream.ChunksWithContext(ctx) {
//	    fmt.Print(string(chunk.Output))
//	}
func (s *JobStream) ChunksWithContext(ctx context.Context) <-chan *StreamChunk {
	ch := make(chan *StreamChunk)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.err = fmt.Errorf("panic in stream reader: %v\n%s", r, debug.Stack())
			}
			close(ch)
		}()

		// Close the stream on cancellation so a pending poll returns.
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				_ = s.Close()
			case <-done:
			}
		}()
		defer close(done)

		for s.Next() {
			chunk := *s.current
			select {
			case ch <- &chunk:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
