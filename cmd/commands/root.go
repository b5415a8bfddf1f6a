package commands

// Root command for Cobra CLI
// Loads configuration and starts logging before any subcommand runs
// Without a subcommand it runs the interactive flow

import (
	"context"
	"fmt"

	"lifeweeks/internal/delivery/telegram"
	"lifeweeks/internal/features/lifechart"
	"lifeweeks/internal/infra/config"
	"lifeweeks/internal/infra/fs"
	logging "lifeweeks/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries state shared by the commands of one tree.
type app struct {
	configFile string
	envFile    string

	// cfg is set by the root pre-run for every subcommand.
	cfg *config.Config
}

// NewRootCmd builds a fresh command tree with its own flag state.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "lifeweeks",
		Short: "Life in Weeks - draw your life as a grid of 90 x 52 weeks",
		Long: `Life in Weeks asks for your name, birthdate and where you live, then renders
a PNG chart with every week you have lived filled in and a marker on your
average life expectancy.`,
		Version:           "1.0.0",
		SilenceUsage:      true,
		PersistentPreRunE: a.loadEnvironment,
		PersistentPostRun: func(cmd *cobra.Command, args []string) { logging.Sync() },
		RunE:              a.runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to config.yaml (default ./config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Path to .env file")
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newTemplateCmd(a))
	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) loadEnvironment(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(config.Options{
		ConfigFile: a.configFile,
		EnvFile:    a.envFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logging.Init(fs.ExpandHome(loaded.App.LogsDir)); err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}

	a.cfg = loaded
	logging.LogDebug("Config loaded",
		zap.String("command", cmd.Name()),
		zap.String("template", loaded.Chart.TemplatePath),
		zap.String("output_dir", loaded.Chart.OutputDir),
		zap.Bool("telegram", loaded.DeliveryEnabled()))
	return nil
}

func newChart(cfg *config.Config) *lifechart.Chart {
	return &lifechart.Chart{
		Geometry:     lifechart.DefaultGeometry(),
		TemplatePath: fs.ExpandHome(cfg.Chart.TemplatePath),
		OutputDir:    fs.ExpandHome(cfg.Chart.OutputDir),
		FontPath:     fs.ExpandHome(cfg.Chart.FontPath),
	}
}

// deliver sends the chart to Telegram when delivery is configured.
// The PNG stays on disk whatever happens here.
func deliver(ctx context.Context, cfg *config.Config, res *lifechart.Result, name string) error {
	if !cfg.DeliveryEnabled() {
		return nil
	}

	sender, err := telegram.Connect(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries)
	if err != nil {
		logging.LogError("Telegram delivery unavailable", zap.String("path", res.Path), zap.Error(err))
		return err
	}
	return sender.SendChart(ctx, res.Path, lifechart.TitleText(name))
}
