package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// table is what a command prints in table mode.
type table struct {
	header []string
	rows   [][]string
	footer []string
}

// render prints v as indented JSON or t as a table, depending on --output.
func (a *app) render(cmd *cobra.Command, v interface{}, t table) error {
	if a.output == outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		return nil
	}

	if len(t.rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No resources found")
		return nil
	}

	w := tablewriter.NewWriter(cmd.OutOrStdout())
	w.SetHeader(t.header)
	w.SetAutoWrapText(false)
	w.AppendBulk(t.rows)
	if len(t.footer) > 0 {
		w.SetFooter(t.footer)
	}
	w.Render()
	return nil
}

// done prints a one-line confirmation, or {"id": ..., "result": ...} in JSON mode.
func (a *app) done(cmd *cobra.Command, id, result string) error {
	if a.output == outputJSON {
		return a.render(cmd, map[string]string{"id": id, "result": result}, table{})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", id, result)
	return nil
}

func str(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func num(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 3, 64)
}
