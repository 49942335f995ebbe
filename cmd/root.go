package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chriserin/ftfold/internal/config"
)

const version = "0.1.0"

var log = commonlog.GetLogger("ftfold.cmd")

var (
	configPath string
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:     "ftfold",
	Short:   "ftfold computes fold ranges for Gherkin feature files",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		var logPath *string
		if cfg.LogFile != "" {
			logPath = &cfg.LogFile
		}
		commonlog.Configure(cfg.LogVerbosity, logPath)
		log.Debugf("config: dir=%s database=%s extensions=%v", cfg.Dir, cfg.Database, cfg.Extensions)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default .ftfold.yaml)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
