package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openswoop/registrar/pkg/database"
	"github.com/openswoop/registrar/pkg/school"
)

var dryRun bool

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync <roster> <catalog>",
	Short: "Upload the school to BigQuery",
	Long: `Loads the roster and catalog, merges the sections, students,
enrollments and grades into BigQuery and publishes a message on the
configured Pub/Sub topic once the tables are up to date.

Requires REGISTRAR_GCP_PROJECT and application default credentials.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.ProjectID == "" {
			return errors.New("REGISTRAR_GCP_PROJECT is not set")
		}
		s, err := loadSchool(args[0], args[1])
		if err != nil {
			return err
		}
		snap := s.Snapshot()

		msg, err := syncMessage(cfg.DatasetID, snap)
		if err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		if dryRun {
			fmt.Fprintln(cmd.OutOrStdout(), "Dry run: data will not be inserted")
			fmt.Fprintln(cmd.OutOrStdout(), string(msg))
			return nil
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		// Connect to BigQuery
		bq, err := database.NewBigQuery(ctx, cfg.ProjectID, cfg.DatasetID)
		if err != nil {
			return fmt.Errorf("failed to connect to bigquery: %w", err)
		}
		if err := save(bq, snap); err != nil {
			return err
		}

		// Publish an event
		if err := publish(ctx, cfg.ProjectID, cfg.TopicID, msg); err != nil {
			return err
		}
		logger.Info("Synced", zap.String("dataset", cfg.DatasetID), zap.String("topic", cfg.TopicID))
		fmt.Fprintln(cmd.OutOrStdout(), "Done.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run without modifying BigQuery or publishing (default: false)")
}

type syncEvent struct {
	Dataset  string `json:"dataset"`
	Students int    `json:"students"`
	Sections int    `json:"sections"`
	Grades   int    `json:"grades"`
}

func syncMessage(dataset string, snap school.Snapshot) ([]byte, error) {
	return json.Marshal(syncEvent{
		Dataset:  dataset,
		Students: len(snap.Students),
		Sections: len(snap.Sections),
		Grades:   len(snap.Grades),
	})
}

func publish(ctx context.Context, projectID, topicID string, msg []byte) error {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to create pubsub client: %w", err)
	}
	defer client.Close()

	topic := client.Topic(topicID)
	defer topic.Stop()
	res := topic.Publish(ctx, &pubsub.Message{Data: msg})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}
