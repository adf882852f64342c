package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openswoop/registrar/pkg/database"
	"github.com/openswoop/registrar/pkg/report"
	"github.com/openswoop/registrar/pkg/school"
)

var (
	reportDir string
	dbFile    string
	noDB      bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <roster> <catalog>",
	Short: "Write CSV reports and a SQLite snapshot",
	Long: `Loads the roster and catalog and writes the student, transcript,
section and GPA distribution reports as CSV files. The same data is
inserted into a local SQLite database unless --no-db is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchool(args[0], args[1])
		if err != nil {
			return err
		}
		return export(cmd, s)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func export(cmd *cobra.Command, s *school.School) error {
	snap := s.Snapshot()

	dir := cfg.ReportDir
	if reportDir != "" {
		dir = reportDir
	}
	files, err := report.WriteAll(dir, snap, s.GPADistribution())
	if err != nil {
		return fmt.Errorf("failed to write reports: %w", err)
	}
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote to file", f)
	}

	if noDB {
		return nil
	}
	file := cfg.DBFile
	if dbFile != "" {
		file = dbFile
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	sqlite, err := database.NewSqlite(file, logger)
	if err != nil {
		return err
	}
	if err := save(sqlite, snap); err != nil {
		return fmt.Errorf("failed to save to database: %w", err)
	}
	logger.Info("Saved to database", zap.String("file", file))
	fmt.Fprintln(cmd.OutOrStdout(), "Saved to database", file)
	return nil
}

// save writes the snapshot and closes the database.
func save(db database.Database, snap school.Snapshot) error {
	if err := db.SaveSnapshot(snap); err != nil {
		_ = db.Close()
		return err
	}
	return db.Close()
}
