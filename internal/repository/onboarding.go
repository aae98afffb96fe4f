package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/joseph-ayodele/merchant-report/internal/common"
	"github.com/joseph-ayodele/merchant-report/internal/entity"
)

// DefaultQueryTimeout bounds a single page query when the caller sets none.
const DefaultQueryTimeout = 60 * time.Second

type OnboardingRepository interface {
	// FetchBatch returns up to limit records completed on targetDate, skipping
	// offset rows, ordered by id descending. An empty slice means no more pages.
	FetchBatch(ctx context.Context, targetDate time.Time, offset, limit int) ([]*entity.Record, error)
}

type onboardingRepository struct {
	db      *Database
	query   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewOnboardingRepository(db *Database, timeout time.Duration, logger *slog.Logger) OnboardingRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &onboardingRepository{
		db:      db,
		query:   onboardingQuery(db.Dialect),
		timeout: timeout,
		logger:  logger,
	}
}

func (r *onboardingRepository) FetchBatch(ctx context.Context, targetDate time.Time, offset, limit int) ([]*entity.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	day := targetDate.Format("2006-01-02")
	rows, err := r.db.DB.QueryContext(ctx, r.query, day, limit, offset)
	if err != nil {
		r.logger.Error("failed to fetch onboarding batch", "date", day, "offset", offset, "error", err)
		return nil, fmt.Errorf("query onboarding batch: %w: %w", common.ErrDatabase, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w: %w", common.ErrDatabase, err)
	}

	var out []*entity.Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan onboarding row: %w: %w", common.ErrDatabase, err)
		}

		rec := &entity.Record{Columns: cols, Values: make(map[string]any, len(cols))}
		for i, c := range cols {
			rec.Values[c] = vals[i]
		}
		rec.ID = toInt64(rec.Values["id"])
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate onboarding rows: %w: %w", common.ErrDatabase, err)
	}

	r.logger.Debug("fetched onboarding batch", "date", day, "offset", offset, "rows", len(out))
	return out, nil
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case []byte:
		n, _ := strconv.ParseInt(string(x), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(x, 10, 64)
		return n
	}
	return 0
}
