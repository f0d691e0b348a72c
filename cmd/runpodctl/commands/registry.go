package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomblancdev/runpod-go"
)

func newRegistryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Manage container registry credentials",
	}
	cmd.AddCommand(
		newRegistryListCmd(a),
		newRegistryCreateCmd(a),
		newRegistryDeleteCmd(a),
	)
	return cmd
}

func registryTable(auths []runpod.ContainerRegistryAuth) table {
	t := table{header: []string{"ID", "Name"}}
	for _, auth := range auths {
		t.rows = append(t.rows, []string{auth.ID, auth.Name})
	}
	return t
}

func newRegistryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registry credentials",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			auths, err := client.Registry().List(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, auths, registryTable(auths))
		},
	}
}

func newRegistryCreateCmd(a *app) *cobra.Command {
	var (
		name          string
		username      string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Store registry credentials. The password is read from stdin",
		Example: `  echo "$GHCR_TOKEN" | runpodctl registry create --name ghcr --username bot --password-stdin`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !passwordStdin {
				return fmt.Errorf("--password-stdin is required")
			}
			password, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && password == "" {
				return fmt.Errorf("reading password: %w", err)
			}

			client, err := a.api()
			if err != nil {
				return err
			}
			auth, err := client.Registry().Create(cmd.Context(), &runpod.ContainerRegistryAuthCreateInput{
				Name:     name,
				Username: username,
				Password: strings.TrimRight(password, "\r\n"),
			})
			if err != nil {
				return err
			}
			return a.render(cmd, auth, registryTable([]runpod.ContainerRegistryAuth{*auth}))
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Credential name (required)")
	f.StringVar(&username, "username", "", "Registry username (required)")
	f.BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newRegistryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete REGISTRY_AUTH_ID",
		Short: "Delete registry credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			if err := client.Registry().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.done(cmd, args[0], "deleted")
		},
	}
}
