package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/warp/asset-engine/depreciation"
	"github.com/warp/asset-engine/factory"
	"github.com/warp/asset-engine/register"
)

type scheduleOptions struct {
	file      string
	assetID   string
	assetName string
	cost      string
	residual  string
	life      int
	method    string
	rate      string
	asJSON    bool
}

func newScheduleCommand() *cobra.Command {
	var opts scheduleOptions

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute a depreciation schedule",
		Long: `Compute a depreciation schedule from flags, or from a JSON request
file with --file (use "-" for stdin). The file uses the same fields as
POST /api/depreciation/calculate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(cmd)
			if err != nil {
				return err
			}
			if req.UsefulLife > register.MaxUsefulLifeYears {
				return &depreciation.ValidationError{
					Field:   "useful_life",
					Message: fmt.Sprintf("useful life must not exceed %d years", register.MaxUsefulLifeYears),
				}
			}
			schedule, err := depreciation.Compute(req)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeScheduleJSON(cmd.OutOrStdout(), schedule)
			}
			return writeScheduleTable(cmd.OutOrStdout(), schedule)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "JSON request file (- for stdin)")
	f.StringVar(&opts.assetID, "asset-id", "", "asset identifier echoed in the output")
	f.StringVar(&opts.assetName, "asset-name", "", "asset name echoed in the output")
	f.StringVar(&opts.cost, "cost", "", "initial cost")
	f.StringVar(&opts.residual, "residual", "0", "residual value")
	f.IntVar(&opts.life, "life", 0, "useful life in years")
	f.StringVar(&opts.method, "method", string(depreciation.StraightLine), "depreciation method")
	f.StringVar(&opts.rate, "rate", "", "annual rate for declining-balance, in (0, 1]")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")

	cmd.MarkFlagsMutuallyExclusive("file", "cost")
	cmd.MarkFlagsOneRequired("file", "cost")

	return cmd
}

func (o scheduleOptions) request(cmd *cobra.Command) (depreciation.Request, error) {
	if o.file != "" {
		data, err := o.readFile(cmd.InOrStdin())
		if err != nil {
			return depreciation.Request{}, err
		}
		return factory.ParseRequest(data)
	}

	cost, err := decimal.NewFromString(o.cost)
	if err != nil {
		return depreciation.Request{}, fmt.Errorf("--cost: %w", err)
	}
	residual, err := decimal.NewFromString(o.residual)
	if err != nil {
		return depreciation.Request{}, fmt.Errorf("--residual: %w", err)
	}

	doc := factory.RequestJSON{
		AssetID:       o.assetID,
		AssetName:     o.assetName,
		InitialCost:   cost,
		ResidualValue: residual,
		UsefulLife:    o.life,
		Method:        o.method,
	}
	if cmd.Flags().Changed("rate") {
		rate, err := decimal.NewFromString(o.rate)
		if err != nil {
			return depreciation.Request{}, fmt.Errorf("--rate: %w", err)
		}
		doc.DepreciationRate = &rate
	}
	return factory.RequestFromJSON(doc)
}

func (o scheduleOptions) readFile(stdin io.Reader) ([]byte, error) {
	if o.file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(o.file)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	return data, nil
}

func writeScheduleJSON(w io.Writer, s depreciation.Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(factory.ScheduleToJSON(s))
}

func writeScheduleTable(w io.Writer, s depreciation.Schedule) error {
	if s.AssetName != "" || s.AssetID != "" {
		fmt.Fprintf(w, "%s %s\n", s.AssetID, s.AssetName)
	}
	fmt.Fprintf(w, "Method: %s  Cost: %s  Residual: %s  Life: %d years\n\n",
		s.Method, s.InitialCost.StringFixed(2), s.ResidualValue.StringFixed(2), s.UsefulLife)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tBeginning\tExpense\tAccumulated\tEnding\t")
	for _, e := range s.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", e.Year,
			e.BeginningBookValue.StringFixed(2),
			e.DepreciationExpense.StringFixed(2),
			e.AccumulatedDepreciation.StringFixed(2),
			e.EndingBookValue.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal depreciation: %s\n", s.TotalDepreciation.StringFixed(2))
	return err
}
