package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tomblancdev/runpod-go"
)

func newPodsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pods",
		Aliases: []string{"pod"},
		Short:   "Manage pods",
	}
	cmd.AddCommand(
		newPodsListCmd(a),
		newPodsGetCmd(a),
		newPodsCreateCmd(a),
		newPodsUpdateCmd(a),
		newPodActionCmd(a, "start", "Start a stopped pod", "started", (*runpod.PodService).Start),
		newPodActionCmd(a, "stop", "Stop a running pod", "stopped", (*runpod.PodService).Stop),
		newPodActionCmd(a, "reset", "Reset a pod", "reset", (*runpod.PodService).Reset),
		newPodActionCmd(a, "restart", "Restart a pod", "restarted", (*runpod.PodService).Restart),
		newPodActionCmd(a, "delete", "Delete a pod", "deleted", (*runpod.PodService).Delete),
	)
	return cmd
}

func podTable(pods []runpod.Pod) table {
	t := table{header: []string{"ID", "Name", "Status", "GPU", "Cost/hr", "Image"}}
	for _, p := range pods {
		gpu := "-"
		if p.GPUTypeID != nil {
			gpu = num(p.GPUCount) + "x " + *p.GPUTypeID
		}
		t.rows = append(t.rows, []string{p.ID, str(p.Name), p.DesiredStatus.String(), gpu, money(p.CostPerHr), p.Image})
	}
	return t
}

func newPodsListCmd(a *app) *cobra.Command {
	var (
		status   string
		name     string
		gpuTypes []string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pods",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}

			query := &runpod.ListPodsQuery{}
			if status != "" {
				s, err := runpod.ParsePodStatus(status)
				if err != nil {
					return err
				}
				query.DesiredStatus = &s
			}
			if name != "" {
				query.Name = &name
			}
			for _, g := range gpuTypes {
				query.GPUTypeID = append(query.GPUTypeID, runpod.GPUTypeID(g))
			}

			pods, err := client.Pods().List(cmd.Context(), query)
			if err != nil {
				return err
			}
			return a.render(cmd, pods, podTable(pods))
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by desired status (RUNNING, EXITED, TERMINATED)")
	cmd.Flags().StringVar(&name, "name", "", "Filter by name")
	cmd.Flags().StringSliceVar(&gpuTypes, "gpu-type", nil, "Filter by GPU type, repeatable")
	return cmd
}

func newPodsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get POD_ID",
		Short: "Show a pod",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			pod, err := client.Pods().Get(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			return a.render(cmd, pod, podTable([]runpod.Pod{*pod}))
		},
	}
}

func newPodsCreateCmd(a *app) *cobra.Command {
	var (
		name            string
		image           string
		templateID      string
		gpuTypes        []string
		gpuCount        int
		cloudType       string
		computeType     string
		containerDisk   int
		volumeSize      int
		volumeMount     string
		networkVolumeID string
		ports           []string
		env             map[string]string
		interruptible   bool
	)
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Rent a new pod",
		Example: `  runpodctl pods create --name trainer --image runpod/pytorch:2.4.0 \
    --gpu-type "NVIDIA GeForce RTX 4090" --gpu-count 1 --port 8888/http`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			in := &runpod.PodCreateInput{Ports: ports}
			if name != "" {
				in.Name = &name
			}
			if image != "" {
				in.ImageName = &image
			}
			if templateID != "" {
				in.TemplateID = &templateID
			}
			for _, g := range gpuTypes {
				in.GPUTypeIDs = append(in.GPUTypeIDs, runpod.GPUTypeID(g))
			}
			if flags.Changed("gpu-count") {
				in.GPUCount = &gpuCount
			}
			if cloudType != "" {
				ct, err := runpod.ParseCloudType(cloudType)
				if err != nil {
					return err
				}
				in.CloudType = &ct
			}
			if computeType != "" {
				ct, err := runpod.ParseComputeType(computeType)
				if err != nil {
					return err
				}
				in.ComputeType = &ct
			}
			if flags.Changed("container-disk-gb") {
				in.ContainerDiskInGB = &containerDisk
			}
			if flags.Changed("volume-gb") {
				in.VolumeInGB = &volumeSize
			}
			if volumeMount != "" {
				in.VolumeMountPath = &volumeMount
			}
			if networkVolumeID != "" {
				in.NetworkVolumeID = &networkVolumeID
			}
			if len(env) > 0 {
				in.Env = env
			}
			if flags.Changed("interruptible") {
				in.Interruptible = &interruptible
			}

			pod, err := client.Pods().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.render(cmd, pod, podTable([]runpod.Pod{*pod}))
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Pod name")
	f.StringVar(&image, "image", "", "Container image")
	f.StringVar(&templateID, "template", "", "Template ID")
	f.StringSliceVar(&gpuTypes, "gpu-type", nil, "Acceptable GPU types in order of preference, repeatable")
	f.IntVar(&gpuCount, "gpu-count", 1, "Number of GPUs")
	f.StringVar(&cloudType, "cloud-type", "", "SECURE or COMMUNITY")
	f.StringVar(&computeType, "compute-type", "", "GPU or CPU")
	f.IntVar(&containerDisk, "container-disk-gb", 0, "Container disk size in GB")
	f.IntVar(&volumeSize, "volume-gb", 0, "Pod volume size in GB")
	f.StringVar(&volumeMount, "volume-mount-path", "", "Where the volume is mounted")
	f.StringVar(&networkVolumeID, "network-volume", "", "Network volume ID to attach")
	f.StringSliceVar(&ports, "port", nil, "Exposed port such as 8888/http, repeatable")
	f.StringToStringVar(&env, "env", nil, "Environment variable KEY=VALUE, repeatable")
	f.BoolVar(&interruptible, "interruptible", false, "Rent as a spot instance")
	return cmd
}

func newPodsUpdateCmd(a *app) *cobra.Command {
	var (
		name          string
		image         string
		containerDisk int
		volumeSize    int
		ports         []string
		env           map[string]string
	)
	cmd := &cobra.Command{
		Use:   "update POD_ID",
		Short: "Change a pod. The pod is restarted when needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			in := &runpod.PodUpdateInput{Ports: ports}
			if flags.Changed("name") {
				in.Name = &name
			}
			if flags.Changed("image") {
				in.ImageName = &image
			}
			if flags.Changed("container-disk-gb") {
				in.ContainerDiskInGB = &containerDisk
			}
			if flags.Changed("volume-gb") {
				in.VolumeInGB = &volumeSize
			}
			if len(env) > 0 {
				in.Env = env
			}

			pod, err := client.Pods().Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return a.render(cmd, pod, podTable([]runpod.Pod{*pod}))
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "New name")
	f.StringVar(&image, "image", "", "New container image")
	f.IntVar(&containerDisk, "container-disk-gb", 0, "New container disk size in GB")
	f.IntVar(&volumeSize, "volume-gb", 0, "New pod volume size in GB")
	f.StringSliceVar(&ports, "port", nil, "Exposed ports, replaces the current list")
	f.StringToStringVar(&env, "env", nil, "Environment, replaces the current one")
	return cmd
}

type podAction func(s *runpod.PodService, ctx context.Context, podID string) error

func newPodActionCmd(a *app, use, short, result string, action podAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " POD_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			if err := action(client.Pods(), cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.done(cmd, args[0], result)
		},
	}
}
