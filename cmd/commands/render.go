package commands

// Non-interactive rendering from flags, for scripts and cron

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lifeweeks/internal/features/expectancy"
	"lifeweeks/internal/features/intro"
	"lifeweeks/internal/features/lifechart"
	"lifeweeks/internal/features/weeks"
	"lifeweeks/internal/infra/fs"
	logging "lifeweeks/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type renderOptions struct {
	name       string
	birthdate  string
	expectancy float64
	location   string
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chart from flags without prompting",
		Example: `  lifeweeks render --name Ada --birthdate 10/12/1990 --location France
  lifeweeks render --name Ada --birthdate 1990-12-10 --expectancy 72.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "First name, used for the title and file name")
	cmd.Flags().StringVar(&opts.birthdate, "birthdate", "", "Birthdate as dd/mm/yyyy, dd-mm-yyyy or yyyy-mm-dd")
	cmd.Flags().Float64Var(&opts.expectancy, "expectancy", 0, "Life expectancy in years")
	cmd.Flags().StringVar(&opts.location, "location", "", "Continent or country to look up in the dataset")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("birthdate")
	cmd.MarkFlagsMutuallyExclusive("expectancy", "location")
	cmd.MarkFlagsOneRequired("expectancy", "location")
	return cmd
}

// checkExpectancy accepts any finite, non-negative number of years.
func checkExpectancy(years float64) error {
	if math.IsNaN(years) || math.IsInf(years, 0) || years < 0 {
		return fmt.Errorf("life expectancy must be a finite number >= 0, got %v", years)
	}
	return nil
}

func (a *app) runRender(cmd *cobra.Command, opts *renderOptions) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !intro.ValidName(opts.name) {
		return fmt.Errorf("invalid name %q: use a single first name", opts.name)
	}

	now := time.Now()
	birthdate, ok := intro.ParseBirthdate(opts.birthdate)
	if !ok {
		return fmt.Errorf("invalid birthdate %q: use dd/mm/yyyy, dd-mm-yyyy or yyyy-mm-dd", opts.birthdate)
	}
	if birthdate.After(weeks.Date(now)) {
		return fmt.Errorf("birthdate %s is in the future", opts.birthdate)
	}

	years := opts.expectancy
	if opts.location != "" {
		dataset, err := expectancy.Load(fs.ExpandHome(a.cfg.Data.ExpectancyCSV))
		if err != nil {
			return err
		}
		if years, err = dataset.Lookup(opts.location); err != nil {
			return err
		}
	}
	if err := checkExpectancy(years); err != nil {
		return err
	}

	chart := newChart(a.cfg)
	chart.Now = func() time.Time { return now }
	res, err := chart.Render(lifechart.Request{Name: opts.name, Birthdate: birthdate, ExpectancyYears: years})
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	logging.LogSuccess("Chart saved",
		zap.String("path", res.Path),
		zap.Int("weeks_lived", res.WeeksLived),
		zap.Bool("grid_full", res.GridFull))
	fmt.Fprintln(cmd.OutOrStdout(), res.Path)

	return deliver(ctx, a.cfg, res, opts.name)
}
