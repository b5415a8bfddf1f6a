package commands

import (
	"fmt"

	"lifeweeks/internal/features/lifechart"
	"lifeweeks/internal/infra/fs"
	logging "lifeweeks/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTemplateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Draw the blank week grid used as the chart background",
		Long: `Draws the empty 90 x 52 grid with week and age labels and writes it to
the configured template path (chart.template_path).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fs.ExpandHome(a.cfg.Chart.TemplatePath)
			if err := lifechart.GenerateTemplate(path, fs.ExpandHome(a.cfg.Chart.FontPath), lifechart.DefaultGeometry()); err != nil {
				return fmt.Errorf("failed to generate template: %w", err)
			}
			logging.LogSuccess("Template written", zap.String("path", path))
			return nil
		},
	}
}
