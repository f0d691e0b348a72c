package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomblancdev/runpod-go"
)

func newEndpointsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "endpoints",
		Aliases: []string{"endpoint", "ep"},
		Short:   "Manage serverless endpoints",
	}
	cmd.AddCommand(
		newEndpointsListCmd(a),
		newEndpointsGetCmd(a),
		newEndpointsCreateCmd(a),
		newEndpointsDeleteCmd(a),
	)
	return cmd
}

func endpointTable(endpoints []runpod.Endpoint) table {
	t := table{header: []string{"ID", "Name", "Template", "GPUs", "Workers", "Scaler"}}
	for _, e := range endpoints {
		gpus := make([]string, len(e.GPUTypeIDs))
		for i, g := range e.GPUTypeIDs {
			gpus[i] = g.String()
		}
		t.rows = append(t.rows, []string{
			e.ID,
			str(e.Name),
			e.TemplateID,
			strings.Join(gpus, ", "),
			strconv.Itoa(e.WorkersMin) + "-" + strconv.Itoa(e.WorkersMax),
			e.ScalerType.String() + "/" + strconv.Itoa(e.ScalerValue),
		})
	}
	return t
}

func newEndpointsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List endpoints",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			endpoints, err := client.Endpoints().List(cmd.Context(), nil)
			if err != nil {
				return err
			}
			return a.render(cmd, endpoints, endpointTable(endpoints))
		},
	}
}

func newEndpointsGetCmd(a *app) *cobra.Command {
	var workers bool
	cmd := &cobra.Command{
		Use:   "get ENDPOINT_ID",
		Short: "Show an endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			endpoint, err := client.Endpoints().Get(cmd.Context(), args[0], &runpod.GetEndpointQuery{IncludeWorkers: &workers})
			if err != nil {
				return err
			}
			return a.render(cmd, endpoint, endpointTable([]runpod.Endpoint{*endpoint}))
		},
	}
	cmd.Flags().BoolVar(&workers, "workers", false, "Include workers in JSON output")
	return cmd
}

func newEndpointsCreateCmd(a *app) *cobra.Command {
	var (
		name        string
		templateID  string
		gpuTypes    []string
		gpuCount    int
		workersMin  int
		workersMax  int
		idleTimeout int
		scalerType  string
		scalerValue int
		flashboot   bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a serverless endpoint from a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			in := &runpod.EndpointCreateInput{TemplateID: templateID}
			if name != "" {
				in.Name = &name
			}
			for _, g := range gpuTypes {
				in.GPUTypeIDs = append(in.GPUTypeIDs, runpod.GPUTypeID(g))
			}
			if flags.Changed("gpu-count") {
				in.GPUCount = &gpuCount
			}
			if flags.Changed("workers-min") {
				in.WorkersMin = &workersMin
			}
			if flags.Changed("workers-max") {
				in.WorkersMax = &workersMax
			}
			if flags.Changed("idle-timeout") {
				in.IdleTimeout = &idleTimeout
			}
			if scalerType != "" {
				st, err := runpod.ParseScalerType(scalerType)
				if err != nil {
					return err
				}
				in.ScalerType = &st
			}
			if flags.Changed("scaler-value") {
				in.ScalerValue = &scalerValue
			}
			if flags.Changed("flashboot") {
				in.Flashboot = &flashboot
			}

			endpoint, err := client.Endpoints().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.render(cmd, endpoint, endpointTable([]runpod.Endpoint{*endpoint}))
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Endpoint name")
	f.StringVar(&templateID, "template", "", "Template ID (required)")
	f.StringSliceVar(&gpuTypes, "gpu-type", nil, "Acceptable GPU types, repeatable")
	f.IntVar(&gpuCount, "gpu-count", 1, "GPUs per worker")
	f.IntVar(&workersMin, "workers-min", 0, "Workers kept warm")
	f.IntVar(&workersMax, "workers-max", 3, "Maximum workers")
	f.IntVar(&idleTimeout, "idle-timeout", 5, "Seconds a worker stays idle before scaling down")
	f.StringVar(&scalerType, "scaler-type", "", "QUEUE_DELAY or REQUEST_COUNT")
	f.IntVar(&scalerValue, "scaler-value", 4, "Scaler threshold")
	f.BoolVar(&flashboot, "flashboot", false, "Enable FlashBoot")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func newEndpointsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ENDPOINT_ID",
		Short: "Delete an endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			if err := client.Endpoints().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.done(cmd, args[0], "deleted")
		},
	}
}
