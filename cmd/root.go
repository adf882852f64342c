package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openswoop/registrar/pkg/config"
	"github.com/openswoop/registrar/pkg/school"
	"github.com/openswoop/registrar/pkg/shell"
)

var (
	cfg    config.Config
	logger = zap.NewNop()

	verbose      bool
	exportOnExit bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "registrar <roster> <catalog>",
	Short: "Manage a school's students, course catalog and grades",
	Long: `Loads a roster of students and a catalog of course sections, then
opens an interactive menu. Students can add and drop classes; school
staff can add students and courses, give grades and look at GPA
statistics.

The roster has one student per line ("First Last, age, year, credits").
The catalog is a CSV file with a header row.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = newLogger(verbose || cfg.Verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchool(args[0], args[1])
		if err != nil {
			return err
		}
		if err := shell.New(s, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Run(); err != nil {
			return err
		}
		if exportOnExit {
			return export(cmd, s)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr (default: false)")
	rootCmd.PersistentFlags().StringVar(&reportDir, "report-dir", "", "Directory for CSV reports (default: $REGISTRAR_REPORT_DIR or .)")
	rootCmd.PersistentFlags().StringVar(&dbFile, "db", "", "SQLite report database (default: $REGISTRAR_DB or the user cache dir)")
	rootCmd.PersistentFlags().BoolVar(&noDB, "no-db", false, "Skip the SQLite report database (default: false)")
	rootCmd.Flags().BoolVar(&exportOnExit, "export", false, "Export reports when the session ends (default: false)")
}

func newLogger(debug bool) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zapConfig.Build()
}

// loadSchool builds a school from a roster file and a catalog file.
func loadSchool(rosterPath, catalogPath string) (*school.School, error) {
	catalog, err := school.LoadCatalog(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	s := school.New(catalog, school.WithLogger(logger))
	if _, err := s.LoadRoster(rosterPath); err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	logger.Info("Loaded school",
		zap.Int("students", len(s.Students())),
		zap.Int("sections", catalog.Len()))
	return s, nil
}
