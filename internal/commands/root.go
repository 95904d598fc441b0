package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qif-tools/tbank2qif/internal/buildinfo"
	"github.com/qif-tools/tbank2qif/internal/config"
	"github.com/qif-tools/tbank2qif/internal/logging"
)

const (
	keyLogLevel    = "log-level"
	keyLogFormat   = "log-format"
	keyAccountType = "account-type"
	envPrefix      = "TBANK2QIF"
)

// cli is the state shared by all subcommands of one invocation.
type cli struct {
	v       *viper.Viper
	cfgFile string
	logger  *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	c := &cli{v: viper.New(), logger: slog.Default()}

	rootCmd := &cobra.Command{
		Use:     "tbank2qif",
		Short:   "Convert T-Bank CSV exports to QIF",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "settings file (default: ./"+config.FileName+" if present)")
	flags.String(keyLogLevel, "warn", "log level (debug, info, warn, error)")
	flags.String(keyLogFormat, "console", "log format (console, json)")
	_ = c.v.BindPFlag(keyLogLevel, flags.Lookup(keyLogLevel))
	_ = c.v.BindPFlag(keyLogFormat, flags.Lookup(keyLogFormat))

	rootCmd.AddCommand(newConvertCommand(c))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// setup layers settings as flag > environment > settings file > defaults,
// then builds the logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	c.v.SetDefault(keyAccountType, cfg.Output.AccountType)
	c.v.SetDefault(keyLogLevel, cfg.Logging.Level)
	c.v.SetDefault(keyLogFormat, cfg.Logging.Format)

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	logger, err := logging.New(cmd.ErrOrStderr(), c.v.GetString(keyLogLevel), c.v.GetString(keyLogFormat))
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	c.logger = logger
	return nil
}

// loadConfig reads the --config file, or ./tbank2qif.yaml when it exists.
func (c *cli) loadConfig() (*config.Config, error) {
	path := c.cfgFile
	if path == "" {
		path = config.FileName
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tbank2qif %s (commit: %s, built: %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
		},
	}
}
