package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/qif-tools/tbank2qif/internal/convert"
	"github.com/qif-tools/tbank2qif/internal/importer"
	"github.com/qif-tools/tbank2qif/internal/model"
)

const (
	defaultInput  = "tbank_input.csv"
	defaultOutput = "tbank_output.qif"
	sourceFormat  = "tbank"
)

func newConvertCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [input.csv] [output.qif]",
		Short: "Convert a T-Bank operations export to a QIF file",
		Long: `Convert a T-Bank operations export (semicolon-separated, Windows-1251) into a
QIF file for HomeBank and similar tools.

The input defaults to ` + defaultInput + ` and the output to ` + defaultOutput + `.
The output file is replaced. Conversion stops at the first malformed row.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := defaultInput, defaultOutput
			if len(args) > 0 {
				input = args[0]
			}
			if len(args) > 1 {
				output = args[1]
			}
			accountType := model.AccountType(c.v.GetString(keyAccountType))
			return runConvert(c.logger, cmd.OutOrStdout(), input, output, accountType)
		},
	}

	cmd.Flags().String(keyAccountType, string(model.DefaultAccountType), "QIF account type (Bank, CCard, Cash, Oth A, Oth L, Invst)")
	_ = c.v.BindPFlag(keyAccountType, cmd.Flags().Lookup(keyAccountType))

	return cmd
}

func runConvert(logger *slog.Logger, stdout io.Writer, input, output string, accountType model.AccountType) error {
	parser := importer.DefaultRegistry().Get(sourceFormat)
	if parser == nil {
		return fmt.Errorf("no parser registered for %s", sourceFormat)
	}

	accountType = accountType.OrDefault()
	if !accountType.Known() {
		logger.Warn("account type is not a standard QIF label, writing it as given",
			"account_type", accountType,
			"known", model.KnownAccountTypes())
	}

	res, err := convert.New(parser, logger).Convert(input, output, accountType)
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(stdout).Printfln("Done! Wrote %d transactions to %s", res.Transactions, output)
	return nil
}
