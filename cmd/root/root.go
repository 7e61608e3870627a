// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/taxi-ledger/internal/config"
	"fjacquet/taxi-ledger/internal/container"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppContainer holds the wired application dependencies. Initialized in
	// PersistentPreRunE and closed in PersistentPostRun.
	AppContainer *container.Container

	// Persistent flag values shared by all commands
	dataDir string
	backend string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "taxi-ledger",
		Short: "Bookkeeping CLI for HAB Taxi Services",
		Long: `taxi-ledger keeps the books for a taxi company: drivers, car rentals,
monthly stand-fee revenue, driver payments and profit reporting.
Records are stored in flat data files or an sqlite database.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to taxi-ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.Storage.Directory = dataDir
			}
			if backend != "" {
				cfg.Storage.Backend = backend
			}

			AppContainer, err = container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			Log = AppContainer.Logger()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.Warnf("Failed to close storage backend: %v", err)
				}
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "D", "", "Directory holding the data files")
	Cmd.PersistentFlags().StringVarP(&backend, "backend", "b", "", "Storage backend (flatfile or sqlite)")
	Cmd.SilenceUsage = true
}
