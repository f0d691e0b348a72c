package runpod

import (
	"context"
	"net/http"
	"time"

	"github.com/go-openapi/strfmt"
)

// BillingRecord is the spend of one time bucket, optionally grouped by
// resource.
type BillingRecord struct {
	Amount            float64         `json:"amount"`
	DiskSpaceBilledGB *int            `json:"diskSpaceBilledGb,omitempty"`
	EndpointID        *string         `json:"endpointId,omitempty"`
	GPUTypeID         *string         `json:"gpuTypeId,omitempty"`
	PodID             *string         `json:"podId,omitempty"`
	Time              strfmt.DateTime `json:"time"`
	TimeBilledMs      *int64          `json:"timeBilledMs,omitempty"`
}

// PodBillingQuery filters [BillingService.Pods]. Times are sent as RFC 3339.
type PodBillingQuery struct {
	BucketSize *BucketSize      `url:"bucketSize,omitempty"`
	EndTime    *time.Time       `url:"endTime,omitempty"`
	GPUTypeID  *GPUTypeID       `url:"gpuTypeId,omitempty"`
	Grouping   *BillingGrouping `url:"grouping,omitempty"`
	PodID      *string          `url:"podId,omitempty"`
	StartTime  *time.Time       `url:"startTime,omitempty"`
}

// EndpointBillingQuery filters [BillingService.Endpoints].
type EndpointBillingQuery struct {
	BucketSize   *BucketSize      `url:"bucketSize,omitempty"`
	DataCenterID []DataCenterID   `url:"dataCenterId,omitempty"`
	EndpointID   *string          `url:"endpointId,omitempty"`
	EndTime      *time.Time       `url:"endTime,omitempty"`
	GPUTypeID    []GPUTypeID      `url:"gpuTypeId,omitempty"`
	Grouping     *BillingGrouping `url:"grouping,omitempty"`
	ImageName    *string          `url:"imageName,omitempty"`
	StartTime    *time.Time       `url:"startTime,omitempty"`
	TemplateID   *string          `url:"templateId,omitempty"`
}

// NetworkVolumeBillingQuery filters [BillingService.NetworkVolumes].
type NetworkVolumeBillingQuery struct {
	BucketSize      *BucketSize `url:"bucketSize,omitempty"`
	EndTime         *time.Time  `url:"endTime,omitempty"`
	NetworkVolumeID *string     `url:"networkVolumeId,omitempty"`
	StartTime       *time.Time  `url:"startTime,omitempty"`
}

// BillingService reads billing history. All calls are read-only.
type BillingService struct {
	t *Transport
}

// Pods returns pod spend.
//
//	records, err := client.Billing().Pods(ctx, &runpod.PodBillingQuery{
//	    BucketSize: runpod.Ptr(runpod.BucketDay),
//	    Grouping:   runpod.Ptr(runpod.GroupByGPUTypeID),
//	})
func (s *BillingService) Pods(ctx context.Context, query *PodBillingQuery) ([]BillingRecord, error) {
	return s.records(ctx, "billing.pods", "/billing/pods", query)
}

// Endpoints returns serverless spend.
func (s *BillingService) Endpoints(ctx context.Context, query *EndpointBillingQuery) ([]BillingRecord, error) {
	return s.records(ctx, "billing.endpoints", "/billing/endpoints", query)
}

// NetworkVolumes returns storage spend.
func (s *BillingService) NetworkVolumes(ctx context.Context, query *NetworkVolumeBillingQuery) ([]BillingRecord, error) {
	return s.records(ctx, "billing.networkvolumes", "/billing/networkvolumes", query)
}

func (s *BillingService) records(ctx context.Context, op, path string, query interface{}) ([]BillingRecord, error) {
	values, err := encodeQuery(op, query)
	if err != nil {
		return nil, err
	}

	var records []BillingRecord
	if err := s.t.do(ctx, Request{Op: op, Method: http.MethodGet, Path: path, Query: values}, &records); err != nil {
		return nil, err
	}
	return records, nil
}
