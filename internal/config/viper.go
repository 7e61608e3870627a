package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Storage backend identifiers.
const (
	BackendFlatfile = "flatfile"
	BackendSQLite   = "sqlite"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Company struct {
		Name     string `mapstructure:"name" yaml:"name"`
		Currency string `mapstructure:"currency" yaml:"currency"`
	} `mapstructure:"company" yaml:"company"`

	Storage struct {
		// Backend selects where ledger state lives: flatfile or sqlite.
		Backend   string `mapstructure:"backend" yaml:"backend"`
		Directory string `mapstructure:"directory" yaml:"directory"`
		// SQLitePath is the database file, relative to Directory unless
		// absolute. Only used with the sqlite backend.
		SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	} `mapstructure:"storage" yaml:"storage"`

	Files struct {
		Counters  string `mapstructure:"counters" yaml:"counters"`
		Revenue   string `mapstructure:"revenue" yaml:"revenue"`
		Employees string `mapstructure:"employees" yaml:"employees"`
		Rentals   string `mapstructure:"rentals" yaml:"rentals"`
		Payments  string `mapstructure:"payments" yaml:"payments"`
		Expenses  string `mapstructure:"expenses" yaml:"expenses"`
	} `mapstructure:"files" yaml:"files"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.taxi-ledger")
	v.AddConfigPath(".taxi-ledger")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("TAXI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("company.name", "HAB Taxi Services")
	v.SetDefault("company.currency", "CAD")

	v.SetDefault("storage.backend", BackendFlatfile)
	v.SetDefault("storage.directory", ".")
	v.SetDefault("storage.sqlite_path", "taxi-ledger.db")

	v.SetDefault("files.counters", "Defaults.dat")
	v.SetDefault("files.revenue", "Revenue.dat")
	v.SetDefault("files.employees", "Employees.dat")
	v.SetDefault("files.rentals", "Rentals.dat")
	v.SetDefault("files.payments", "EmployeePayments.dat")
	v.SetDefault("files.expenses", "Expenses.dat")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Storage.Backend != BackendFlatfile && config.Storage.Backend != BackendSQLite {
		return fmt.Errorf("invalid storage backend: %s (must be '%s' or '%s')",
			config.Storage.Backend, BackendFlatfile, BackendSQLite)
	}

	for name, file := range map[string]string{
		"files.counters":  config.Files.Counters,
		"files.revenue":   config.Files.Revenue,
		"files.employees": config.Files.Employees,
		"files.rentals":   config.Files.Rentals,
		"files.payments":  config.Files.Payments,
		"files.expenses":  config.Files.Expenses,
	} {
		if file == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// dataPath resolves a file name against the storage directory.
func (c *Config) dataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Storage.Directory, name)
}

// CountersPath returns the resolved counters file path.
func (c *Config) CountersPath() string { return c.dataPath(c.Files.Counters) }

// RevenuePath returns the resolved revenue ledger path.
func (c *Config) RevenuePath() string { return c.dataPath(c.Files.Revenue) }

// EmployeesPath returns the resolved employee store path.
func (c *Config) EmployeesPath() string { return c.dataPath(c.Files.Employees) }

// RentalsPath returns the resolved rental ledger path.
func (c *Config) RentalsPath() string { return c.dataPath(c.Files.Rentals) }

// PaymentsPath returns the resolved payment ledger path.
func (c *Config) PaymentsPath() string { return c.dataPath(c.Files.Payments) }

// ExpensesPath returns the resolved expenses file path.
func (c *Config) ExpensesPath() string { return c.dataPath(c.Files.Expenses) }

// SQLiteDBPath returns the resolved sqlite database path.
func (c *Config) SQLiteDBPath() string { return c.dataPath(c.Storage.SQLitePath) }
