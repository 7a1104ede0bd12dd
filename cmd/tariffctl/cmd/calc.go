package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/tokenwatt/internal/tariff"
)

var (
	highlight = color.New(color.FgGreen, color.Bold).SprintFunc()
	muted     = color.New(color.FgCyan).SprintFunc()
)

func (c *cli) newCostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cost <units>",
		Short: "Price a quantity of kWh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := parseDecimalArg("units", args[0])
			if err != nil {
				return err
			}

			total, b, err := c.app.Engine.CostFromUnits(c.tariffID, units)
			if err != nil {
				return err
			}
			c.logger.Debug("cost from units", zap.String("units", units.String()), zap.String("total", total.String()))

			summary := fmt.Sprintf("%s kWh = %s %s", units.String(), total.StringFixed(2), b.Currency)
			return c.printResult(cmd.OutOrStdout(), summary, b)
		},
	}
}

func (c *cli) newUnitsCmd() *cobra.Command {
	var initialRaw, existingRaw string

	cmd := &cobra.Command{
		Use:   "units <amount>",
		Short: "Find how many kWh an amount buys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseDecimalArg("amount", args[0])
			if err != nil {
				return err
			}

			units, b, err := c.units(amount, initialRaw, existingRaw)
			if err != nil {
				return err
			}

			summary := fmt.Sprintf("%s kWh = %s %s", units.StringFixed(2), amount.StringFixed(2), b.Currency)
			if p := b.Payments; p != nil {
				summary = fmt.Sprintf("%s kWh (Total: %s %s = %s + %s)",
					units.StringFixed(2), b.Total.StringFixed(2), b.Currency,
					p.InitialAmount.StringFixed(2), p.NewAmount.StringFixed(2))
			}
			return c.printResult(cmd.OutOrStdout(), summary, b)
		},
	}
	cmd.Flags().StringVar(&initialRaw, "initial", "", "amount already paid earlier in the billing period")
	cmd.Flags().StringVar(&existingRaw, "existing", "", "kWh already consumed in the billing period")
	cmd.MarkFlagsMutuallyExclusive("initial", "existing")
	return cmd
}

// units picks the conversion matching the flags that were set.
func (c *cli) units(amount decimal.Decimal, initialRaw, existingRaw string) (decimal.Decimal, tariff.Breakdown, error) {
	engine := c.app.Engine
	switch {
	case existingRaw != "":
		existing, err := parseDecimalArg("existing", existingRaw)
		if err != nil {
			return decimal.Zero, tariff.Breakdown{}, err
		}
		return engine.UnitsFromCostWithOffset(c.tariffID, amount, existing)
	case initialRaw != "":
		initial, err := parseDecimalArg("initial", initialRaw)
		if err != nil {
			return decimal.Zero, tariff.Breakdown{}, err
		}
		return engine.UnitsFromCombinedPayments(c.tariffID, amount, initial)
	default:
		return engine.UnitsFromCost(c.tariffID, amount)
	}
}

func (c *cli) newSchedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "List the tariff schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := c.app.Engine.Registry()
			out := cmd.OutOrStdout()

			if c.asJSON {
				return writeJSON(out, registry.Schedules())
			}

			data := pterm.TableData{{"", "ID", "Name", "Rates", "Limits (kWh)", "Currency"}}
			for _, s := range registry.Schedules() {
				marker := ""
				if s.ID == registry.DefaultID() {
					marker = "*"
				}
				data = append(data, []string{
					marker,
					s.ID,
					s.Name,
					fmt.Sprintf("%s / %s / %s", s.Tier1Rate, s.Tier2Rate, s.Tier3Rate),
					fmt.Sprintf("%s / %s", s.Tier1Limit, s.Tier2Limit),
					s.Currency,
				})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, table)
			fmt.Fprintf(out, "VAT %s%%\n", c.app.Engine.VATRate().Mul(decimal.NewFromInt(100)).String())
			return nil
		},
	}
}

func (c *cli) printResult(out io.Writer, summary string, b tariff.Breakdown) error {
	if c.asJSON {
		return writeJSON(out, b)
	}

	fmt.Fprintln(out, highlight(summary))
	if err := printTierTable(out, "Tier breakdown", b); err != nil {
		return err
	}

	if p := b.Payments; p != nil && p.HasBothPayments {
		fmt.Fprintln(out, muted(fmt.Sprintf("Bought as separate payments: %s kWh", p.SequentialUnits.StringFixed(2))))
		if p.Initial != nil {
			if err := printTierTable(out, "Initial payment", *p.Initial); err != nil {
				return err
			}
		}
		if p.New != nil {
			if err := printTierTable(out, "New payment", *p.New); err != nil {
				return err
			}
		}
	}
	return nil
}

func printTierTable(out io.Writer, title string, b tariff.Breakdown) error {
	data := pterm.TableData{{"Tier", "Rate (" + b.Currency + "/kWh)", "Units", "Cost (" + b.Currency + ")"}}
	for _, line := range b.ActiveTiers() {
		data = append(data, []string{
			fmt.Sprintf("Tier %d (%s)", line.Tier, line.Label),
			line.Rate.String(),
			line.Units.StringFixed(2),
			line.Cost.StringFixed(2),
		})
	}
	data = append(data,
		[]string{"Subtotal (units)", "", b.TotalUnits.StringFixed(2) + " kWh", ""},
		[]string{"Subtotal (cost)", "", "", b.Subtotal.StringFixed(2)},
		[]string{"VAT (" + b.VATPercent().String() + "%)", "", "", b.VATAmount.StringFixed(2)},
		[]string{"Total", "", "", b.Total.StringFixed(2)},
	)

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, muted(title))
	fmt.Fprintln(out, table)
	return nil
}

func parseDecimalArg(name, raw string) (decimal.Decimal, error) {
	return tariff.ParseQuantity(name, raw)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
