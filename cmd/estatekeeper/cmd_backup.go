package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"estatekeeper/internal/backup"
)

var clearYes bool

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export everything to a backup archive",
	Long: `Writes all records, settings, and document bytes to a portable zip
archive. The archive restores fully with 'estatekeeper import'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Restore a backup archive, replacing current records",
	Long: `Restores a backup archive. All current tasks, documents, assets,
expenses, and beneficiaries are replaced by the archive's contents. The
archive is validated first; a bad archive changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every record and setting",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm deletion")
}

func runExport(cmd *cobra.Command, args []string) error {
	now := time.Now()
	path := fmt.Sprintf("estate-backup-%s.zip", now.Format("2006-01-02"))
	if len(args) == 1 {
		path = args[0]
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := backup.Export(s, now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("Backup written", zap.String("path", path), zap.Int("bytes", len(data)))
	fmt.Printf("Exported backup to %s (%d bytes)\n", path, len(data))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := backup.Import(s, data); err != nil {
		return err
	}
	fmt.Printf("Imported %s\n", args[0])
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to delete all data without --yes")
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ClearAll(); err != nil {
		return err
	}
	fmt.Println("All data cleared.")
	return nil
}
