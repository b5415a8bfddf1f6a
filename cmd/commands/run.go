package commands

// Interactive flow: greeting, name, birthdate, confirmation,
// location choice, chart rendering and optional delivery

import (
	"context"
	"errors"
	"fmt"
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

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Ask a few questions and draw your life in weeks (default)",
		RunE:  a.runInteractive,
	}
}

func (a *app) runInteractive(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	now := time.Now()
	p := intro.New(cmd.InOrStdin(), cmd.OutOrStdout())

	p.DisplayGreeting(now)
	name, err := p.AskName()
	if err != nil {
		return err
	}

	birthdate, err := p.AskBirthdate(name, now)
	if err != nil {
		return err
	}
	lived := weeks.Lived(birthdate, now)
	p.ShowResults(name, birthdate, lived)

	if err := p.AskContinue(name); err != nil {
		if errors.Is(err, intro.ErrAborted) {
			logging.LogInfo("User declined to continue")
			return nil
		}
		return err
	}

	choice, err := p.ChooseLocation()
	if err != nil {
		return err
	}

	dataset, err := expectancy.Load(fs.ExpandHome(a.cfg.Data.ExpectancyCSV))
	if err != nil {
		logging.LogError("Failed to load life expectancy data", zap.Error(err))
		return err
	}

	years, err := p.AskExpectancy(choice, dataset)
	if err != nil {
		return err
	}

	if lived > weeks.Capacity {
		p.Congratulate(name)
	}

	chart := newChart(a.cfg)
	chart.Now = func() time.Time { return now }
	res, err := chart.Render(lifechart.Request{Name: name, Birthdate: birthdate, ExpectancyYears: years})
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	logging.LogSuccess("Chart saved", zap.String("path", res.Path))

	if err := deliver(ctx, a.cfg, res, name); err != nil {
		return err
	}

	p.Goodbye()
	return nil
}
