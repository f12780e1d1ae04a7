package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ressKim-io/eccn-classifier/internal/adapter/client"
	"github.com/ressKim-io/eccn-classifier/internal/adapter/repository/postgres"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/database"
	"github.com/ressKim-io/eccn-classifier/internal/rag"
	"github.com/ressKim-io/eccn-classifier/internal/usecase"
)

func newIngestCmd(c *cli) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Embed the ECCN catalog CSV and store it",
		Long: `Reads the catalog CSV (derived_ecn_no, ecn_number, parent_ecn, is_leaf,
description_en, notes), embeds every definition in batches and upserts it into
the configured database. Batches that fail to embed are logged and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if file == "" {
				file = c.cfg.Catalog.Path
			}

			db, err := database.NewPostgresDB(&c.cfg.Database, false)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			embedder, err := client.NewEmbedder(ctx, &c.cfg.Embedding)
			if err != nil {
				return fmt.Errorf("failed to create embedder: %w", err)
			}

			repo := postgres.NewDefinitionRepository(db)
			catalogUC := usecase.NewCatalogUsecase(usecase.CatalogDeps{
				Repo:        repo,
				Embedder:    embedder,
				Index:       rag.NewIndex(repo, embedder, c.logger),
				Logger:      c.logger,
				BatchSize:   c.cfg.Embedding.BatchSize,
				Concurrency: c.cfg.Embedding.Concurrency,
			})

			out, err := catalogUC.Ingest(ctx, file)
			if err != nil {
				return err
			}

			c.logger.Debug("Ingestion finished", zap.Int64("duration_ms", out.DurationMs))
			fmt.Fprintf(c.stdout, "rows: %d\nindexed: %d\nfailed batches: %d\n", out.Rows, out.Indexed, out.FailedBatches)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Catalog CSV (default from ECCN_CATALOG_PATH)")
	return cmd
}
