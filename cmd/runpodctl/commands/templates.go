package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomblancdev/runpod-go"
)

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template", "tpl"},
		Short:   "Manage templates",
	}
	cmd.AddCommand(
		newTemplatesListCmd(a),
		newTemplatesGetCmd(a),
		newTemplatesCreateCmd(a),
		newTemplatesDeleteCmd(a),
	)
	return cmd
}

func templateTable(templates []runpod.Template) table {
	t := table{header: []string{"ID", "Name", "Image", "Serverless", "Public"}}
	for _, tpl := range templates {
		t.rows = append(t.rows, []string{
			tpl.ID,
			tpl.Name,
			tpl.ImageName,
			strconv.FormatBool(tpl.IsServerless),
			strconv.FormatBool(tpl.IsPublic),
		})
	}
	return t
}

func newTemplatesListCmd(a *app) *cobra.Command {
	var public, official bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			templates, err := client.Templates().List(cmd.Context(), &runpod.ListTemplatesQuery{
				IncludePublicTemplates: &public,
				IncludeRunpodTemplates: &official,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, templates, templateTable(templates))
		},
	}
	cmd.Flags().BoolVar(&public, "public", false, "Include community templates")
	cmd.Flags().BoolVar(&official, "runpod", false, "Include official RunPod templates")
	return cmd
}

func newTemplatesGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get TEMPLATE_ID",
		Short: "Show a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			tpl, err := client.Templates().Get(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			return a.render(cmd, tpl, templateTable([]runpod.Template{*tpl}))
		},
	}
}

func newTemplatesCreateCmd(a *app) *cobra.Command {
	var (
		name          string
		image         string
		category      string
		serverless    bool
		containerDisk int
		ports         []string
		env           map[string]string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}

			in := &runpod.TemplateCreateInput{Name: name, ImageName: image, Ports: ports}
			if category != "" {
				c, err := runpod.ParseTemplateCategory(category)
				if err != nil {
					return err
				}
				in.Category = &c
			}
			if cmd.Flags().Changed("serverless") {
				in.IsServerless = &serverless
			}
			if cmd.Flags().Changed("container-disk-gb") {
				in.ContainerDiskInGB = &containerDisk
			}
			if len(env) > 0 {
				in.Env = env
			}

			tpl, err := client.Templates().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.render(cmd, tpl, templateTable([]runpod.Template{*tpl}))
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Template name (required)")
	f.StringVar(&image, "image", "", "Container image (required)")
	f.StringVar(&category, "category", "", "NVIDIA, AMD or CPU")
	f.BoolVar(&serverless, "serverless", false, "Template is for serverless endpoints")
	f.IntVar(&containerDisk, "container-disk-gb", 0, "Container disk size in GB")
	f.StringSliceVar(&ports, "port", nil, "Exposed port, repeatable")
	f.StringToStringVar(&env, "env", nil, "Environment variable KEY=VALUE, repeatable")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func newTemplatesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TEMPLATE_ID",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			if err := client.Templates().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.done(cmd, args[0], "deleted")
		},
	}
}
