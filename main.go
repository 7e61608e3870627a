package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fjacquet/taxi-ledger/cmd/billing"
	"fjacquet/taxi-ledger/cmd/driver"
	"fjacquet/taxi-ledger/cmd/menu"
	"fjacquet/taxi-ledger/cmd/payment"
	"fjacquet/taxi-ledger/cmd/rental"
	"fjacquet/taxi-ledger/cmd/report"
	"fjacquet/taxi-ledger/cmd/root"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure the global log level before anything logs
	configureLogLevelDirectly()

	// 3. Initialize the root command and its flags
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(menu.Cmd)
	root.Cmd.AddCommand(driver.Cmd)
	root.Cmd.AddCommand(rental.Cmd)
	root.Cmd.AddCommand(payment.Cmd)
	root.Cmd.AddCommand(billing.Cmd)
	root.Cmd.AddCommand(report.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus
// instances before any command runs
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
