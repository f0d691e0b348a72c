package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomblancdev/runpod-go"
)

func newVolumesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "volumes",
		Aliases: []string{"volume", "vol"},
		Short:   "Manage network volumes",
	}
	cmd.AddCommand(
		newVolumesListCmd(a),
		newVolumesGetCmd(a),
		newVolumesCreateCmd(a),
		newVolumesResizeCmd(a),
		newVolumesDeleteCmd(a),
	)
	return cmd
}

func volumeTable(volumes []runpod.NetworkVolume) table {
	t := table{header: []string{"ID", "Name", "Size (GB)", "Data Center"}}
	for _, v := range volumes {
		t.rows = append(t.rows, []string{v.ID, v.Name, strconv.Itoa(v.Size), v.DataCenterID})
	}
	return t
}

func newVolumesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List network volumes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			volumes, err := client.NetworkVolumes().List(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, volumes, volumeTable(volumes))
		},
	}
}

func newVolumesGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get VOLUME_ID",
		Short: "Show a network volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			volume, err := client.NetworkVolumes().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, volume, volumeTable([]runpod.NetworkVolume{*volume}))
		},
	}
}

func newVolumesCreateCmd(a *app) *cobra.Command {
	var (
		name       string
		size       int
		dataCenter string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a network volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			volume, err := client.NetworkVolumes().Create(cmd.Context(), &runpod.NetworkVolumeCreateInput{
				Name:         name,
				Size:         size,
				DataCenterID: dataCenter,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, volume, volumeTable([]runpod.NetworkVolume{*volume}))
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Volume name (required)")
	f.IntVar(&size, "size", 0, "Size in GB (required)")
	f.StringVar(&dataCenter, "data-center", "", "Data center ID such as EU-RO-1 (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("size")
	_ = cmd.MarkFlagRequired("data-center")
	return cmd
}

func newVolumesResizeCmd(a *app) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "resize VOLUME_ID",
		Short: "Grow a network volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			volume, err := client.NetworkVolumes().Update(cmd.Context(), args[0], &runpod.NetworkVolumeUpdateInput{Size: &size})
			if err != nil {
				return err
			}
			return a.render(cmd, volume, volumeTable([]runpod.NetworkVolume{*volume}))
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "New size in GB (required)")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func newVolumesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete VOLUME_ID",
		Short: "Delete a network volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			if err := client.NetworkVolumes().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.done(cmd, args[0], "deleted")
		},
	}
}
