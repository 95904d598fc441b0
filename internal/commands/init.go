package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/qif-tools/tbank2qif/internal/config"
)

func newInitCommand() *cobra.Command {
	var accountType string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default " + config.FileName,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			path, err := runInit(absDir, accountType, force)
			if err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "account-type", "", "default QIF account type to store")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file")

	return cmd
}

func runInit(dir, accountType string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.FileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	cfg := config.Default()
	if accountType != "" {
		cfg.Output.AccountType = accountType
	}
	if err := config.Save(path, cfg); err != nil {
		return "", fmt.Errorf("writing settings: %w", err)
	}
	return path, nil
}
