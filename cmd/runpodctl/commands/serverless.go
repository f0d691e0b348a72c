package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomblancdev/runpod-go"
)

func newServerlessCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serverless",
		Aliases: []string{"sls"},
		Short:   "Submit and follow serverless jobs",
	}
	cmd.AddCommand(
		newServerlessRunCmd(a),
		newServerlessStatusCmd(a),
		newServerlessCancelCmd(a),
		newServerlessHealthCmd(a),
		newServerlessPurgeCmd(a),
	)
	return cmd
}

func jobTable(results ...*runpod.JobResult) table {
	t := table{header: []string{"Job", "Status", "Delay (ms)", "Execution (ms)", "Output"}}
	for _, r := range results {
		out := string(r.Output)
		if msg := r.ErrorMessage(); msg != "" {
			out = msg
		}
		out = ellipsize(out, 60)
		t.rows = append(t.rows, []string{
			r.ID,
			r.Status.String(),
			strconv.FormatInt(r.DelayTime, 10),
			strconv.FormatInt(r.ExecutionTime, 10),
			out,
		})
	}
	return t
}

// ellipsize shortens s to at most n runes.
func ellipsize(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func newServerlessRunCmd(a *app) *cobra.Command {
	var (
		input    string
		sync     bool
		wait     bool
		stream   bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:     "run ENDPOINT_ID",
		Short:   "Submit a job",
		Example: `  runpodctl serverless run my-endpoint --input '{"prompt": "a red fox"}' --wait`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(input)) {
				return fmt.Errorf("--input is not valid JSON")
			}
			client, err := a.api()
			if err != nil {
				return err
			}
			runner := client.Serverless(args[0])
			ctx := cmd.Context()

			if sync {
				result, err := runner.RunSync(ctx, json.RawMessage(input))
				if err != nil {
					return err
				}
				return a.render(cmd, result, jobTable(result))
			}

			job, err := runner.Run(ctx, json.RawMessage(input))
			if err != nil {
				return err
			}
			a.log.Debug().Str("job", job.ID()).Msg("job submitted")

			switch {
			case stream:
				s := job.Stream(ctx, interval)
				defer s.Close()
				for s.Next() {
					fmt.Fprintln(cmd.OutOrStdout(), string(s.Chunk().Output))
				}
				if err := s.Err(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "job %s %s\n", job.ID(), s.Status())
				return nil
			case wait:
				result, err := job.Wait(ctx, interval)
				if err != nil {
					return err
				}
				return a.render(cmd, result, jobTable(result))
			default:
				return a.done(cmd, job.ID(), "queued")
			}
		},
	}
	f := cmd.Flags()
	f.StringVar(&input, "input", "{}", "Job input as JSON")
	f.BoolVar(&sync, "sync", false, "Use runsync and wait server-side")
	f.BoolVar(&wait, "wait", false, "Poll until the job finishes")
	f.BoolVar(&stream, "stream", false, "Print streamed output until the job finishes")
	f.DurationVar(&interval, "poll-interval", runpod.DefaultPollInterval, "Delay between polls")
	cmd.MarkFlagsMutuallyExclusive("sync", "wait", "stream")
	return cmd
}

func newServerlessStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status ENDPOINT_ID JOB_ID",
		Short: "Show a job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			result, err := client.Serverless(args[0]).Job(args[1]).Status(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, result, jobTable(result))
		},
	}
}

func newServerlessCancelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ENDPOINT_ID JOB_ID",
		Short: "Cancel a job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			result, err := client.Serverless(args[0]).Job(args[1]).Cancel(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, result, jobTable(result))
		},
	}
}

func newServerlessHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health ENDPOINT_ID",
		Short: "Show queue and worker counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			h, err := client.Serverless(args[0]).Health(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, h, table{
				header: []string{"In Queue", "In Progress", "Completed", "Failed", "Workers Ready", "Workers Running"},
				rows: [][]string{{
					strconv.Itoa(h.Jobs.InQueue),
					strconv.Itoa(h.Jobs.InProgress),
					strconv.Itoa(h.Jobs.Completed),
					strconv.Itoa(h.Jobs.Failed),
					strconv.Itoa(h.Workers.Ready),
					strconv.Itoa(h.Workers.Running),
				}},
			})
		},
	}
}

func newServerlessPurgeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "purge ENDPOINT_ID",
		Short: "Drop every queued job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.api()
			if err != nil {
				return err
			}
			if err := client.Serverless(args[0]).PurgeQueue(cmd.Context()); err != nil {
				return err
			}
			return a.done(cmd, args[0], "queue purged")
		},
	}
}
