package commands

import (
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tomblancdev/runpod-go"
)

// accountStatus summarizes what the account currently holds.
type accountStatus struct {
	Pods           int     `json:"pods"`
	RunningPods    int     `json:"runningPods"`
	CostPerHr      float64 `json:"costPerHr"`
	Endpoints      int     `json:"endpoints"`
	Templates      int     `json:"templates"`
	NetworkVolumes int     `json:"networkVolumes"`
	NetworkStorage int     `json:"networkStorageGb"`
	RegistryAuths  int     `json:"registryAuths"`
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize pods, endpoints, templates, volumes and registry credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}

			var (
				status    accountStatus
				pods      []runpod.Pod
				endpoints []runpod.Endpoint
				templates []runpod.Template
				volumes   []runpod.NetworkVolume
				auths     []runpod.ContainerRegistryAuth
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() (err error) {
				pods, err = client.Pods().List(ctx, nil)
				return err
			})
			g.Go(func() (err error) {
				endpoints, err = client.Endpoints().List(ctx, nil)
				return err
			})
			g.Go(func() (err error) {
				templates, err = client.Templates().List(ctx, nil)
				return err
			})
			g.Go(func() (err error) {
				volumes, err = client.NetworkVolumes().List(ctx)
				return err
			})
			g.Go(func() (err error) {
				auths, err = client.Registry().List(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			status.Pods = len(pods)
			for _, p := range pods {
				if p.DesiredStatus == runpod.PodStatusRunning {
					status.RunningPods++
					status.CostPerHr += p.CostPerHr
				}
			}
			status.Endpoints = len(endpoints)
			status.Templates = len(templates)
			status.NetworkVolumes = len(volumes)
			for _, v := range volumes {
				status.NetworkStorage += v.Size
			}
			status.RegistryAuths = len(auths)

			return a.render(cmd, status, table{
				header: []string{"Resource", "Count", "Detail"},
				rows: [][]string{
					{"Pods", strconv.Itoa(status.Pods), strconv.Itoa(status.RunningPods) + " running, " + money(status.CostPerHr) + "/hr"},
					{"Endpoints", strconv.Itoa(status.Endpoints), ""},
					{"Templates", strconv.Itoa(status.Templates), ""},
					{"Network volumes", strconv.Itoa(status.NetworkVolumes), strconv.Itoa(status.NetworkStorage) + " GB"},
					{"Registry credentials", strconv.Itoa(status.RegistryAuths), ""},
				},
			})
		},
	}
}
