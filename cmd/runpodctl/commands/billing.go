package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomblancdev/runpod-go"
)

// billingFlags are shared by every billing subcommand.
type billingFlags struct {
	bucket   string
	grouping string
	since    time.Duration
	start    string
	end      string
}

func (f *billingFlags) register(cmd *cobra.Command, grouping bool) {
	cmd.Flags().StringVar(&f.bucket, "bucket", string(runpod.BucketDay), "Bucket size: hour, day, week, month or year")
	if grouping {
		cmd.Flags().StringVar(&f.grouping, "group-by", "", "Group by podId, endpointId or gpuTypeId")
	}
	cmd.Flags().DurationVar(&f.since, "since", 7*24*time.Hour, "Report this far back from now, ignored when --start is set")
	cmd.Flags().StringVar(&f.start, "start", "", "Start time, RFC 3339")
	cmd.Flags().StringVar(&f.end, "end", "", "End time, RFC 3339 (default now)")
}

// parse returns the bucket, grouping and time range selected by the flags.
func (f *billingFlags) parse(now time.Time) (*runpod.BucketSize, *runpod.BillingGrouping, *time.Time, *time.Time, error) {
	bucket, err := runpod.ParseBucketSize(f.bucket)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var grouping *runpod.BillingGrouping
	if f.grouping != "" {
		g, err := runpod.ParseBillingGrouping(f.grouping)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		grouping = &g
	}

	end := now.UTC()
	if f.end != "" {
		if end, err = time.Parse(time.RFC3339, f.end); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("invalid --end: %w", err)
		}
	}
	start := end.Add(-f.since)
	if f.start != "" {
		if start, err = time.Parse(time.RFC3339, f.start); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("invalid --start: %w", err)
		}
	}
	if !start.Before(end) {
		return nil, nil, nil, nil, fmt.Errorf("start %s is not before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return &bucket, grouping, &start, &end, nil
}

func newBillingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Show spend history",
	}
	cmd.AddCommand(
		newBillingPodsCmd(a),
		newBillingEndpointsCmd(a),
		newBillingVolumesCmd(a),
	)
	return cmd
}

func billingTable(records []runpod.BillingRecord) table {
	t := table{header: []string{"Time", "Group", "Amount"}}
	var total float64
	for _, r := range records {
		group := "-"
		switch {
		case r.PodID != nil:
			group = *r.PodID
		case r.EndpointID != nil:
			group = *r.EndpointID
		case r.GPUTypeID != nil:
			group = *r.GPUTypeID
		}
		total += r.Amount
		t.rows = append(t.rows, []string{time.Time(r.Time).UTC().Format(time.RFC3339), group, money(r.Amount)})
	}
	t.footer = []string{"", "Total", money(total)}
	return t
}

func newBillingPodsCmd(a *app) *cobra.Command {
	var f billingFlags
	var podID string
	cmd := &cobra.Command{
		Use:   "pods",
		Short: "Pod spend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bucket, grouping, start, end, err := f.parse(time.Now())
			if err != nil {
				return err
			}
			query := &runpod.PodBillingQuery{BucketSize: bucket, Grouping: grouping, StartTime: start, EndTime: end}
			if podID != "" {
				query.PodID = &podID
			}
			return a.billing(cmd, func(ctx context.Context, s *runpod.BillingService) ([]runpod.BillingRecord, error) {
				return s.Pods(ctx, query)
			})
		},
	}
	f.register(cmd, true)
	cmd.Flags().StringVar(&podID, "pod", "", "Only this pod")
	return cmd
}

func newBillingEndpointsCmd(a *app) *cobra.Command {
	var f billingFlags
	var endpointID string
	cmd := &cobra.Command{
		Use:   "endpoints",
		Short: "Serverless spend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bucket, grouping, start, end, err := f.parse(time.Now())
			if err != nil {
				return err
			}
			query := &runpod.EndpointBillingQuery{BucketSize: bucket, Grouping: grouping, StartTime: start, EndTime: end}
			if endpointID != "" {
				query.EndpointID = &endpointID
			}
			return a.billing(cmd, func(ctx context.Context, s *runpod.BillingService) ([]runpod.BillingRecord, error) {
				return s.Endpoints(ctx, query)
			})
		},
	}
	f.register(cmd, true)
	cmd.Flags().StringVar(&endpointID, "endpoint", "", "Only this endpoint")
	return cmd
}

func newBillingVolumesCmd(a *app) *cobra.Command {
	var f billingFlags
	var volumeID string
	cmd := &cobra.Command{
		Use:   "volumes",
		Short: "Network volume spend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bucket, _, start, end, err := f.parse(time.Now())
			if err != nil {
				return err
			}
			query := &runpod.NetworkVolumeBillingQuery{BucketSize: bucket, StartTime: start, EndTime: end}
			if volumeID != "" {
				query.NetworkVolumeID = &volumeID
			}
			return a.billing(cmd, func(ctx context.Context, s *runpod.BillingService) ([]runpod.BillingRecord, error) {
				return s.NetworkVolumes(ctx, query)
			})
		},
	}
	f.register(cmd, false)
	cmd.Flags().StringVar(&volumeID, "volume", "", "Only this network volume")
	return cmd
}

func (a *app) billing(cmd *cobra.Command, fetch func(context.Context, *runpod.BillingService) ([]runpod.BillingRecord, error)) error {
	client, err := a.api()
	if err != nil {
		return err
	}
	records, err := fetch(cmd.Context(), client.Billing())
	if err != nil {
		return err
	}
	return a.render(cmd, records, billingTable(records))
}
