// Package commands implements the runpodctl command tree.
package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomblancdev/runpod-go"
)

// flag names
const (
	flagAPIKey     = "api-key"
	flagRESTURL    = "rest-url"
	flagAPIURL     = "api-url"
	flagGraphQLURL = "graphql-url"
	flagTimeout    = "timeout"
	flagEnvFile    = "env-file"
	flagOutput     = "output"
	flagDebug      = "debug"
)

// output formats
const (
	outputTable = "table"
	outputJSON  = "json"
)

// app holds the global flags and the lazily built API client shared by
// every subcommand.
type app struct {
	apiKey     string
	restURL    string
	apiURL     string
	graphqlURL string
	timeout    time.Duration
	envFile    string
	output     string
	debug      bool

	dotenv map[string]string
	log    zerolog.Logger
	client *runpod.Client
}

// NewRootCmd builds the runpodctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "runpodctl",
		Short: "Manage RunPod pods, endpoints and serverless jobs",
		Long: `runpodctl is a command line client for the RunPod REST and serverless APIs.

Settings are read from flags, then RUNPOD_* environment variables, then the
file given with --env-file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.apiKey, flagAPIKey, "", "RunPod API key (env: RUNPOD_API_KEY)")
	flags.StringVar(&a.restURL, flagRESTURL, "", "REST API base URL (env: RUNPOD_REST_URL)")
	flags.StringVar(&a.apiURL, flagAPIURL, "", "Serverless API base URL (env: RUNPOD_API_URL)")
	flags.StringVar(&a.graphqlURL, flagGraphQLURL, "", "GraphQL API URL (env: RUNPOD_GRAPHQL_URL)")
	flags.DurationVar(&a.timeout, flagTimeout, 0, "Per-request timeout (env: RUNPOD_TIMEOUT_SECS)")
	flags.StringVar(&a.envFile, flagEnvFile, "", "Read settings from this .env file")
	flags.StringVarP(&a.output, flagOutput, "o", outputTable, "Output format: table or json")
	flags.BoolVar(&a.debug, flagDebug, false, "Log requests to stderr")

	cmd.AddCommand(
		newPodsCmd(a),
		newEndpointsCmd(a),
		newTemplatesCmd(a),
		newVolumesCmd(a),
		newRegistryCmd(a),
		newBillingCmd(a),
		newServerlessCmd(a),
		newStatusCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.output != outputTable && a.output != outputJSON {
		return fmt.Errorf("invalid output format %q: want %s or %s", a.output, outputTable, outputJSON)
	}

	if a.debug {
		a.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	}

	if a.envFile != "" {
		values, err := godotenv.Read(a.envFile)
		if err != nil {
			return fmt.Errorf("reading env file: %w", err)
		}
		a.dotenv = values
		a.log.Debug().Str("file", a.envFile).Int("vars", len(values)).Msg("loaded env file")
	}
	return nil
}

// setting returns the flag value when set, otherwise the first of keys found
// in the environment or the env file.
func (a *app) setting(flagValue string, keys ...string) string {
	if flagValue != "" {
		return flagValue
	}
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
	}
	for _, key := range keys {
		if v, ok := a.dotenv[key]; ok {
			return v
		}
	}
	return ""
}

func (a *app) configParams() (runpod.ConfigParams, error) {
	p := runpod.ConfigParams{
		APIKey:     a.setting(a.apiKey, runpod.EnvAPIKey),
		RESTURL:    a.setting(a.restURL, runpod.EnvRESTURL, runpod.EnvBaseURL),
		APIURL:     a.setting(a.apiURL, runpod.EnvAPIURL),
		GraphQLURL: a.setting(a.graphqlURL, runpod.EnvGraphQLURL),
		Timeout:    a.timeout,
	}
	if p.Timeout == 0 {
		if v := a.setting("", runpod.EnvTimeoutSecs); v != "" {
			secs, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || secs <= 0 {
				return p, fmt.Errorf("invalid %s value %q", runpod.EnvTimeoutSecs, v)
			}
			p.Timeout = time.Duration(secs) * time.Second
		}
	}
	return p, nil
}

// api returns the shared client, building it on first use.
func (a *app) api() (*runpod.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	params, err := a.configParams()
	if err != nil {
		return nil, err
	}
	cfg, err := runpod.NewConfig(params)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Stringer("config", cfg).Msg("using config")

	client, err := runpod.NewClient(cfg,
		runpod.WithLogger(a.log),
		runpod.WithDebug(a.debug),
		runpod.WithUserAgent("runpodctl/"+runpod.Version),
	)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}
