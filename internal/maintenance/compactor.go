// Package maintenance holds housekeeping jobs that keep the database tidy.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"portfolio-api/internal/repository"
)

// Observer is notified after each table is compacted.
type Observer interface {
	ObserveCompaction(table string, removed int64, err error)
}

// TableResult is the outcome of compacting one table.
type TableResult struct {
	Table   string
	Removed int64
	Err     error
}

// Compactor deletes stale rows from singleton tables, keeping only the newest
// row of each.
type Compactor struct {
	repo     repository.MaintenanceRepository
	tables   []string
	logger   logrus.FieldLogger
	observer Observer
}

type CompactorOption func(*Compactor)

func WithLogger(logger logrus.FieldLogger) CompactorOption {
	return func(c *Compactor) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithObserver(observer Observer) CompactorOption {
	return func(c *Compactor) { c.observer = observer }
}

func NewCompactor(repo repository.MaintenanceRepository, tables []string, opts ...CompactorOption) *Compactor {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	c := &Compactor{
		repo:   repo,
		tables: append([]string(nil), tables...),
		logger: quiet,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run compacts every table, continuing past failures. The returned error
// joins the per-table failures.
func (c *Compactor) Run(ctx context.Context) ([]TableResult, error) {
	results := make([]TableResult, 0, len(c.tables))
	var errs []error

	for _, table := range c.tables {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		removed, err := c.repo.CompactSingleton(ctx, table)
		if c.observer != nil {
			c.observer.ObserveCompaction(table, removed, err)
		}
		results = append(results, TableResult{Table: table, Removed: removed, Err: err})

		entry := c.logger.WithField("table", table)
		if err != nil {
			entry.WithError(err).Warn("compaction failed")
			errs = append(errs, fmt.Errorf("compact %s: %w", table, err))
			continue
		}
		if removed > 0 {
			entry.WithField("removed", removed).Info("compacted singleton table")
		}
	}
	return results, errors.Join(errs...)
}
