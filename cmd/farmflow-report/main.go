// Command farmflow-report prints the filtered entry list, the period trend and
// the expense breakdown for one filter selection.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"farmflow/internal/backend"
	"farmflow/internal/config"
	"farmflow/internal/finance"
	"farmflow/internal/log"
	"farmflow/internal/services"
)

func main() {
	if err := run(context.Background(), os.Args[1:], config.Load(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "farmflow-report:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, cfg *config.Config, out io.Writer) error {
	fs := flag.NewFlagSet("farmflow-report", flag.ContinueOnError)
	fs.SetOutput(out)
	backendName := fs.String("backend", cfg.DataBackend, "data backend: "+strings.Join(backend.BackendTypeStrings(), ", "))
	search := fs.String("search", "", "case-insensitive match on description or category")
	typ := fs.String("type", "all", "entry type: all, income or expense")
	category := fs.String("category", finance.AllCategories, "category, or all")
	period := fs.String("period", string(finance.Monthly), "trend period: monthly, quarterly or yearly")
	if err := fs.Parse(args); err != nil {
		return err
	}

	typeFilter, err := finance.ParseTypeFilter(*typ)
	if err != nil {
		return err
	}
	p, err := finance.ParsePeriod(*period)
	if err != nil {
		return err
	}

	cfg.DataBackend = *backendName
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	// Logs go to stderr at warn so they never interleave with the report.
	logger := log.New(log.Config{Level: slog.LevelWarn, Format: cfg.LogFormat, Component: log.ComponentBackend, Output: os.Stderr})
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return err
	}
	defer res.Close()

	f := finance.FilterState{Search: *search, Type: typeFilter, Category: *category}
	report, views, err := services.NewFinanceService(res.Backend, res.Backend, nil).Report(ctx, f, p)
	if err != nil {
		return err
	}
	return render(out, report, views)
}

func render(out io.Writer, report finance.Report, views []services.EntryView) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "ENTRIES (%d)\n", len(views))
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tCATEGORY\tFARM\tAMOUNT\tDESCRIPTION")
	for _, v := range views {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Date.ISODay(), v.Type, v.Category, v.FarmName, v.Magnitude().StringFixed(2), v.Description)
	}

	fmt.Fprintf(w, "\nTREND (%s)\n", report.Period)
	fmt.Fprintln(w, "PERIOD\tINCOME\tEXPENSES")
	for i, label := range report.Trend.Labels {
		fmt.Fprintf(w, "%s\t%s\t%s\n", label, report.Trend.Income[i].StringFixed(2), report.Trend.Expenses[i].StringFixed(2))
	}

	fmt.Fprintln(w, "\nEXPENSE BREAKDOWN")
	if report.Breakdown.Empty() {
		fmt.Fprintln(w, "no expenses")
	} else {
		fmt.Fprintln(w, "CATEGORY\tAMOUNT\tSHARE")
		for i, label := range report.Breakdown.Labels {
			share := "-"
			if i < len(report.Percentages) {
				share = fmt.Sprintf("%d%%", report.Percentages[i])
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", label, report.Breakdown.Values[i].StringFixed(2), share)
		}
	}

	s := report.Summary
	fmt.Fprintln(w, "\nSUMMARY")
	fmt.Fprintf(w, "Total income\t%s\n", s.TotalIncome.StringFixed(2))
	fmt.Fprintf(w, "Total expenses\t%s\n", s.TotalExpenses.StringFixed(2))
	fmt.Fprintf(w, "Net balance\t%s\n", s.NetBalance.StringFixed(2))
	return w.Flush()
}
