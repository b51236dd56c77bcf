package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"shortlist/internal/client"
	"shortlist/internal/logger"
)

const (
	app       = "shortlist"
	envPrefix = "SHORTLIST"

	defaultAPI = "http://localhost:5000"
)

// Actual version can be specified in build command.
var version = "unknown"

type Config struct {
	API     string        `mapstructure:"api"`
	Timeout time.Duration `mapstructure:"timeout"`
	JSON    bool          `mapstructure:"json"`
	Debug   bool          `mapstructure:"debug"`
}

type env struct {
	v       *viper.Viper
	cfgFile string
	newAPI  func(Config, *zap.Logger) client.CandidateAPI
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(func(cfg Config, logger *zap.Logger) client.CandidateAPI {
		return client.New(cfg.API, cfg.Timeout, logger)
	})
}

func newRootCommand(newAPI func(Config, *zap.Logger) client.CandidateAPI) *cobra.Command {
	e := &env{v: viper.New(), newAPI: newAPI}

	root := &cobra.Command{
		Use:           app,
		Short:         "shortlist browses the candidate pool and builds a hiring shortlist of up to 5 people",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return e.readConfig()
		},
	}

	root.PersistentFlags().StringVar(&e.cfgFile, "config", "", "a config file (default is shortlist.yaml in current directory, optional)")
	root.PersistentFlags().String("api", defaultAPI, "base URL of the candidate API")
	root.PersistentFlags().Duration("timeout", client.DefaultTimeout, "per-request timeout")
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	for _, name := range []string{"api", "timeout", "debug", "json"} {
		_ = e.v.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}
	e.v.SetEnvPrefix(envPrefix)
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	e.v.AutomaticEnv()

	root.AddCommand(
		newListCommand(e),
		newGetCommand(e),
		newTeamCommand(e),
		newBrowseCommand(e),
		newVersionCommand(),
	)
	return root
}

func (e *env) readConfig() error {
	if e.cfgFile != "" {
		e.v.SetConfigFile(e.cfgFile)
	} else {
		e.v.AddConfigPath(".")
		e.v.SetConfigName(app)
		e.v.SetConfigType("yaml")
	}

	if err := e.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if e.cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func (e *env) config() (Config, error) {
	var cfg Config
	if err := e.v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if strings.TrimSpace(cfg.API) == "" {
		return cfg, errors.New("api base URL is required (--api or SHORTLIST_API)")
	}
	return cfg, nil
}

// setup returns the logger and API client for a command run.
func (e *env) setup() (*zap.Logger, client.CandidateAPI, error) {
	cfg, err := e.config()
	if err != nil {
		return nil, nil, err
	}
	zl, err := logger.New(cfg.JSON, cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}
	api := e.newAPI(cfg, zl)
	if api == nil {
		return nil, nil, errors.New("candidate api is not configured")
	}
	return zl, api, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}
