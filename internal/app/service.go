// Package service wires the pipeline stages into the two operations the
// binary exposes: building the ranked dataset and enriching it in place.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/roster/internal/adapters/dataset"
	"github.com/okian/roster/internal/adapters/source"
	"github.com/okian/roster/internal/domain/enrich"
	"github.com/okian/roster/internal/domain/normalize"
	"github.com/okian/roster/internal/domain/rank"
	"github.com/okian/roster/internal/domain/repair"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
)

// Default pipeline configuration.
const (
	defaultLimit      = 1000
	defaultOutputPath = "assets/players.csv"
)

// Service runs the normalization -> dedupe/rank -> enrichment pipeline.
// Processing is single-threaded batch: each operation reads its input
// whole, transforms it in memory, and writes its output whole.
type Service struct {
	limit         int
	outputPath    string
	repairEnabled bool

	src        source.Source
	normalizer *normalize.Normalizer
	enricher   *enrich.Enricher

	runID  string
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLimit caps the ranked output size.
func WithLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithOutputPath sets the ranked/enriched dataset location.
func WithOutputPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.outputPath = path
		}
	}
}

// WithSource sets the raw dataset source.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.src = src
		}
	}
}

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// WithEnricher replaces the default enricher.
func WithEnricher(e *enrich.Enricher) Option {
	return func(s *Service) {
		if e != nil {
			s.enricher = e
		}
	}
}

// WithRepair toggles the column-split repair pass.
func WithRepair(enabled bool) Option {
	return func(s *Service) {
		s.repairEnabled = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		limit:         defaultLimit,
		outputPath:    defaultOutputPath,
		repairEnabled: true,
		normalizer:    normalize.New(),
		enricher:      enrich.New(),
		runID:         uuid.NewString(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	return s
}

// Run executes the full pipeline: build the ranked dataset, then enrich it.
func (s *Service) Run(ctx context.Context) error {
	if err := s.Build(ctx); err != nil {
		return err
	}
	return s.Enrich(ctx)
}

// Build acquires the raw dataset, normalizes and merges it, and writes
// the ranked top-N to the output path. Rows without a resolvable name
// and unparseable ratings are absorbed, never fatal; only a missing raw
// dataset aborts.
func (s *Service) Build(ctx context.Context) error {
	start := time.Now()
	s.logger.Info(ctx, "building ranked dataset",
		logger.String("run_id", s.runID),
		logger.Int("limit", s.limit),
	)

	if s.src == nil {
		return fmt.Errorf("build: %w", source.ErrMissingInput)
	}

	rawPath, err := s.src.Ensure(ctx)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	doc, err := dataset.Read(rawPath)
	switch {
	case errors.Is(err, dataset.ErrEmptyDataset):
		// An empty source still yields a header-only ranked output.
		doc = &dataset.Document{}
	case err != nil:
		return fmt.Errorf("build: %w", err)
	}

	store := rank.NewMemStore(rank.WithSizeHint(len(doc.Rows)))
	var read, skipped, merged int
	for _, row := range doc.Rows {
		read++
		metrics.RecordRowRead()

		rec, ok := s.normalizer.Record(row)
		if !ok {
			skipped++
			metrics.RecordRowSkipped()
			continue
		}

		before := store.Count(ctx)
		store.Upsert(ctx, rec)
		if store.Count(ctx) == before {
			merged++
			metrics.RecordMergeDuplicate()
		}
	}

	top, err := store.TopN(ctx, s.limit)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	if err := dataset.WriteRanked(s.outputPath, top); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	metrics.UpdateRankedRecords(len(top))
	metrics.RecordStageDuration("build", float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "wrote ranked dataset",
		logger.String("run_id", s.runID),
		logger.String("path", s.outputPath),
		logger.Int("players", len(top)),
		logger.Int("rows_read", read),
		logger.Int("rows_skipped", skipped),
		logger.Int("rows_merged", merged),
	)
	return nil
}

// Enrich reads the ranked dataset back, fills the derived URL columns
// where empty, repairs column-split rows when enabled, and rewrites the
// file in place. Pre-existing columns and row count are preserved.
func (s *Service) Enrich(ctx context.Context) error {
	start := time.Now()
	s.logger.Info(ctx, "enriching dataset",
		logger.String("run_id", s.runID),
		logger.String("path", s.outputPath),
	)

	doc, err := dataset.Read(s.outputPath)
	if err != nil {
		return fmt.Errorf("enrich: %w", err)
	}

	doc.EnsureColumns(dataset.ColName, dataset.ColRating, dataset.ColPosition)
	doc.EnsureColumns(dataset.ColImageURL, dataset.ColFutbinURL)

	var filled, repaired int
	for _, row := range doc.Rows {
		name := strings.TrimSpace(row[dataset.ColName])
		if name == "" && s.repairEnabled {
			// Whole line may have landed in the first source column.
			if n, rating, pos, ok := repair.FromColumnSplit(row[doc.Header[0]]); ok {
				row[dataset.ColName] = n
				row[dataset.ColRating] = rating
				row[dataset.ColPosition] = pos
				name = n
				repaired++
				metrics.RecordRowRepaired()
			}
		}
		if name == "" {
			continue
		}

		if row[dataset.ColImageURL] == "" {
			row[dataset.ColImageURL] = s.enricher.AvatarURL(name)
			filled++
			metrics.RecordURLFilled()
		}
		if row[dataset.ColFutbinURL] == "" {
			row[dataset.ColFutbinURL] = s.enricher.FutbinURL(name)
			filled++
			metrics.RecordURLFilled()
		}
	}

	if err := dataset.Write(s.outputPath, doc); err != nil {
		return fmt.Errorf("enrich: %w", err)
	}

	metrics.UpdateDatasetRows(len(doc.Rows))
	metrics.RecordStageDuration("enrich", float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "updated dataset with reference URLs",
		logger.String("run_id", s.runID),
		logger.String("path", s.outputPath),
		logger.Int("rows", len(doc.Rows)),
		logger.Int("urls_filled", filled),
		logger.Int("rows_repaired", repaired),
	)
	return nil
}
