package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spacesedan/reviewlens/config"
	appconfig "github.com/spacesedan/reviewlens/internal/config"
	"github.com/spacesedan/reviewlens/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configPath *string
	envName    *string

	cfg *appconfig.Config
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file.")
	envName = rootCmd.PersistentFlags().String("env", "", "Environment whose config/envs/.env.<env> file is loaded (defaults to $APP_ENV or dev).")
}

var rootCmd = &cobra.Command{
	Use:   "reviewlens",
	Short: "reviewlens scrapes product reviews and reports their sentiment.",

	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		env := *envName
		if env == "" {
			env = os.Getenv("APP_ENV")
		}
		if env == "" {
			env = "dev"
		}
		config.LoadEnv(env)

		loaded, err := appconfig.Load(*configPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded

		logging.InitLogger(cfg.Logging.Level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return windowCmd.RunE(cmd, args)
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
