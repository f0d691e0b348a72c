package runpod

import "github.com/go-openapi/swag"

// Helpers for filling optional input fields.
//
//	input := &runpod.PodCreateInput{
//	    Name:     runpod.String("my-pod"),
//	    GPUCount: runpod.Int(1),
//	}

// String returns a pointer to v.
func String(v string) *string { return swag.String(v) }

// Int returns a pointer to v.
func Int(v int) *int { return swag.Int(v) }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return swag.Int64(v) }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return swag.Bool(v) }

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return swag.Float64(v) }

// Ptr returns a pointer to v. Use it for enum values:
//
//	CloudType: runpod.Ptr(runpod.CloudTypeSecure)
func Ptr[T any](v T) *T { return &v }

// StringValue returns the value of p, or "" when p is nil.
func StringValue(p *string) string { return swag.StringValue(p) }

// IntValue returns the value of p, or 0 when p is nil.
func IntValue(p *int) int { return swag.IntValue(p) }
