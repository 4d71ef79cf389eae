package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evdash/app"
	"github.com/kilianp07/evdash/core/analytics"
	"github.com/kilianp07/evdash/infra/logger"
	"github.com/kilianp07/evdash/infra/snapshot"
)

var reportFlags struct {
	table    string
	format   string
	top      int
	from     string
	to       string
	chargers []string
	regions  []string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print one analytics table of the current snapshot",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFlags.table, "table", app.TableKPIs, "table: "+strings.Join(app.ReportTables(), "|"))
	f.StringVar(&reportFlags.format, "format", "csv", "output format: csv or json")
	f.IntVar(&reportFlags.top, "top", 10, "number of stations for top and queue-capacity")
	f.StringVar(&reportFlags.from, "from", "", "first start day, YYYY-MM-DD")
	f.StringVar(&reportFlags.to, "to", "", "last start day, YYYY-MM-DD")
	f.StringSliceVar(&reportFlags.chargers, "charger-type", nil, "charger types to keep")
	f.StringSliceVar(&reportFlags.regions, "region", nil, "regions to keep")
	rootCmd.AddCommand(reportCmd)
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	filter := analytics.Filter{ChargerTypes: reportFlags.chargers, Regions: reportFlags.regions}
	if filter.From, err = parseDay(reportFlags.from); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	if filter.To, err = parseDay(reportFlags.to); err != nil {
		return fmt.Errorf("to: %w", err)
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	// report is offline: it reads the files without metrics or notifier.
	ds, err := snapshot.Load(cfg.Output)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	return app.WriteReport(cmd.OutOrStdout(), ds, app.ReportOptions{
		Table:  reportFlags.table,
		Format: reportFlags.format,
		Top:    reportFlags.top,
		Filter: filter,
	})
}
