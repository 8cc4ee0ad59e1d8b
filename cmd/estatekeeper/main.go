package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"estatekeeper/internal/config"
	"estatekeeper/internal/logging"
	"estatekeeper/internal/store"
)

var (
	// Global flags
	dataDir string
	verbose bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "estatekeeper",
	Short: "estatekeeper - Estate administration tracker",
	Long: `estatekeeper tracks the administration of a decedent's estate:
the statutory deadline calendar, the executor's task checklist, documents,
assets, expenses, and beneficiary notices.

All records live in a single SQLite database under the data directory
(default ~/.estatekeeper, override with --data-dir or ESTATEKEEPER_DATA_DIR).
Backups are portable zip archives; see 'estatekeeper export'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Data directory (default ~/.estatekeeper)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(deadlinesCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(docCmd)
	rootCmd.AddCommand(assetCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(beneficiaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore loads config, brings up the category logger, and opens the
// database. Callers must Close the returned store.
func openStore() (*config.Config, *store.Store, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := logging.Initialize(cfg.DataDir); err != nil {
		return nil, nil, err
	}
	logger.Debug("Opening store", zap.String("path", cfg.DatabasePath()))
	s, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func todayISO() string {
	return time.Now().Format("2006-01-02")
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

// orDash substitutes a placeholder for empty display values.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
