package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"HelioCast/internal/domain/models"
	domrepo "HelioCast/internal/domain/repository"
	pkgch "HelioCast/pkg/clickhouse"
	applogger "HelioCast/pkg/logger"
)

// CHSeriesStore implements SeriesStore backed by ClickHouse. Daily points
// come straight from the observations table; monthly points come from the
// rollup view maintained by the ingest pipeline.
type CHSeriesStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHSeriesStore(ch *pkgch.Client) *CHSeriesStore {
	return &CHSeriesStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHSeriesStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHSeriesStore) GetPoints(ctx context.Context, series string, from, to time.Time, cad domrepo.Cadence) ([]models.MonthlyPoint, error) {
	start := time.Now()
	table, bucket, err := tableForCadence(cad)
	if err != nil {
		return nil, err
	}
	const qtpl = `
        SELECT %s, avg(value)
        FROM %s
        WHERE series = ? AND %s >= ? AND %s <= ?
        GROUP BY %s
        ORDER BY %s ASC
    `
	q := fmt.Sprintf(qtpl, bucket, table, bucket, bucket, bucket, bucket)
	rows, err := s.db.QueryContext(ctx, q, series, from, to)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_points query error",
				applogger.String("table", table),
				applogger.String("series", series),
				applogger.String("cad", string(cad)),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get points: %w", err)
	}
	defer rows.Close()

	out := make([]models.MonthlyPoint, 0, 1024)
	for rows.Next() {
		var p models.MonthlyPoint
		if err := rows.Scan(&p.Month, &p.Value); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse get_points scan error",
					applogger.String("table", table),
					applogger.String("series", series),
					applogger.String("cad", string(cad)),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan point: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_points rows error",
				applogger.String("table", table),
				applogger.String("series", series),
				applogger.String("cad", string(cad)),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse get_points ok",
			applogger.String("table", table),
			applogger.String("series", series),
			applogger.String("cad", string(cad)),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHSeriesStore) GetLatestN(ctx context.Context, series string, n int, cad domrepo.Cadence) ([]models.MonthlyPoint, error) {
	start := time.Now()
	table, bucket, err := tableForCadence(cad)
	if err != nil {
		return nil, err
	}
	const qtpl = `
        SELECT %s, avg(value)
        FROM %s
        WHERE series = ?
        GROUP BY %s
        ORDER BY %s DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, bucket, table, bucket, bucket)
	rows, err := s.db.QueryContext(ctx, q, series, n)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_points query error",
				applogger.String("table", table),
				applogger.String("series", series),
				applogger.String("cad", string(cad)),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get latest points: %w", err)
	}
	defer rows.Close()

	tmp := make([]models.MonthlyPoint, 0, n)
	for rows.Next() {
		var p models.MonthlyPoint
		if err := rows.Scan(&p.Month, &p.Value); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse latest_points scan error",
					applogger.String("table", table),
					applogger.String("series", series),
					applogger.String("cad", string(cad)),
					applogger.Int("limit", n),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan point: %w", err)
		}
		tmp = append(tmp, p)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_points rows error",
				applogger.String("table", table),
				applogger.String("series", series),
				applogger.String("cad", string(cad)),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_points ok",
			applogger.String("table", table),
			applogger.String("series", series),
			applogger.String("cad", string(cad)),
			applogger.Int("limit", n),
			applogger.Int("rows", len(tmp)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return tmp, nil
}

func (s *CHSeriesStore) SaveForecast(ctx context.Context, f *models.Forecast) error {
	start := time.Now()
	const q = `
        INSERT INTO heliocast.forecasts (series, start, horizon, model, step, value, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	for i, v := range f.Values {
		month := f.Start.AddDate(0, i, 0)
		if _, err := s.db.ExecContext(ctx, q, f.Series, month, f.Horizon, f.Model, i, v, f.Timestamp); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse save_forecast error",
					applogger.String("series", f.Series),
					applogger.String("model", f.Model),
					applogger.Int("step", i),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("save forecast step %d: %w", i, err)
		}
	}
	if s.l != nil {
		s.l.Info("clickhouse save_forecast ok",
			applogger.String("series", f.Series),
			applogger.String("model", f.Model),
			applogger.Int("steps", len(f.Values)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func tableForCadence(cad domrepo.Cadence) (table, bucket string, err error) {
	switch cad {
	case domrepo.CadDaily:
		return "heliocast.observations", "toDate(timestamp)", nil
	case domrepo.CadMonthly:
		return "heliocast.observations", "toStartOfMonth(timestamp)", nil
	default:
		return "", "", fmt.Errorf("unsupported cadence: %s", cad)
	}
}

var _ domrepo.SeriesStore = (*CHSeriesStore)(nil)
