package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Simplici0/tokenwatt/internal/export"
	"github.com/Simplici0/tokenwatt/internal/tariff"
	"github.com/Simplici0/tokenwatt/internal/web"
)

// breakdownFlags selects the conversion rendered by the file exports.
type breakdownFlags struct {
	units    string
	amount   string
	initial  string
	existing string
	out      string
}

func (c *cli) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the static site or a breakdown file",
	}
	cmd.AddCommand(c.newExportSiteCmd(), c.newExportFileCmd("xlsx", export.WriteXLSX), c.newExportFileCmd("pdf", export.WritePDF))
	return cmd
}

func (c *cli) newExportSiteCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "site",
		Short: "Render the calculator pages as static HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := web.New(c.app.Engine, c.logger, nil)
			if err != nil {
				return err
			}

			written, err := web.Export(cmd.Context(), srv.Routes(), dir, nil)
			if err != nil {
				return err
			}
			for _, path := range written {
				pterm.Success.WithWriter(cmd.OutOrStdout()).Println("wrote " + path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "dist", "output directory")
	return cmd
}

func (c *cli) newExportFileCmd(format string, write func(w io.Writer, title string, b tariff.Breakdown) error) *cobra.Command {
	var flags breakdownFlags

	cmd := &cobra.Command{
		Use:   format,
		Short: fmt.Sprintf("Write a breakdown as %s", format),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			title, b, err := c.breakdown(flags)
			if err != nil {
				return err
			}

			path := flags.out
			if path == "" {
				path = "breakdown." + format
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := write(f, title, b); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", path, err)
			}

			pterm.Success.WithWriter(cmd.OutOrStdout()).Println("wrote " + path)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.units, "units", "", "kWh to price")
	cmd.Flags().StringVar(&flags.amount, "amount", "", "amount to convert to kWh")
	cmd.Flags().StringVar(&flags.initial, "initial", "", "amount already paid earlier in the billing period")
	cmd.Flags().StringVar(&flags.existing, "existing", "", "kWh already consumed in the billing period")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output file (default breakdown."+format+")")
	cmd.MarkFlagsOneRequired("units", "amount")
	cmd.MarkFlagsMutuallyExclusive("units", "amount")
	cmd.MarkFlagsMutuallyExclusive("initial", "existing")
	return cmd
}

func (c *cli) breakdown(flags breakdownFlags) (string, tariff.Breakdown, error) {
	if flags.units != "" {
		units, err := parseDecimalArg("units", flags.units)
		if err != nil {
			return "", tariff.Breakdown{}, err
		}
		_, b, err := c.app.Engine.CostFromUnits(c.tariffID, units)
		return fmt.Sprintf("Cost of %s kWh", units.String()), b, err
	}

	amount, err := parseDecimalArg("amount", flags.amount)
	if err != nil {
		return "", tariff.Breakdown{}, err
	}
	_, b, err := c.units(amount, flags.initial, flags.existing)
	return fmt.Sprintf("Units for %s %s", amount.StringFixed(2), b.Currency), b, err
}
