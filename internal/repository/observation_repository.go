package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"HelioCast/internal/domain/models"
	"HelioCast/internal/domain/repository"
	pkgkafka "HelioCast/pkg/kafka"
)

// ClickHouseStorage implements Storage for ClickHouse.
type ClickHouseStorage struct {
	db    *sql.DB
	table string
}

// NewClickHouseStorage creates ClickHouse storage.
func NewClickHouseStorage(db *sql.DB, table string) repository.Storage {
	return &ClickHouseStorage{db: db, table: table}
}

func (s *ClickHouseStorage) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseStorage) Store(ctx context.Context, o *models.Observation) error {
	q := fmt.Sprintf("INSERT INTO %s (timestamp, series, station, value, source, event_id) VALUES (?, ?, ?, ?, ?, ?)", s.table)
	// Idempotency key derived from station+day; re-delivered frames dedupe
	// via the table's ReplacingMergeTree engine.
	eventID := fmt.Sprintf("%s-%d", o.Station, o.Timestamp)
	_, err := s.db.ExecContext(ctx, q,
		time.Unix(o.Timestamp, 0),
		"sunspots",
		o.Station,
		o.Value,
		o.Source,
		eventID,
	)
	return err
}

func (s *ClickHouseStorage) StoreBatch(ctx context.Context, obs []*models.Observation) error {
	if len(obs) == 0 {
		return nil
	}
	// Batch insert using VALUES multi-row to reduce round-trips.
	const chunkSize = 2000
	for start := 0; start < len(obs); start += chunkSize {
		end := start + chunkSize
		if end > len(obs) {
			end = len(obs)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*6)
		for _, o := range obs[start:end] {
			if o == nil || o.Station == "" || o.Timestamp == 0 {
				continue
			}
			eventID := fmt.Sprintf("%s-%d", o.Station, o.Timestamp)
			values = append(values, "(?, ?, ?, ?, ?, ?)")
			args = append(args,
				time.Unix(o.Timestamp, 0),
				"sunspots",
				o.Station,
				o.Value,
				o.Source,
				eventID,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (timestamp, series, station, value, source, event_id) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseStorage) Query(ctx context.Context, station string, from, to time.Time, limit int) ([]*models.Observation, error) {
	q := fmt.Sprintf("SELECT station, timestamp, value, source FROM %s WHERE station = ? AND timestamp >= ? AND timestamp <= ? ORDER BY timestamp DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, station, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var obs []*models.Observation
	for rows.Next() {
		var o models.Observation
		var ts time.Time
		if err := rows.Scan(&o.Station, &ts, &o.Value, &o.Source); err != nil {
			return nil, err
		}
		o.Timestamp = ts.Unix()
		obs = append(obs, &o)
	}
	return obs, rows.Err()
}

func (s *ClickHouseStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStorage) Close() error {
	return nil // Managed by pkg
}

// KafkaPublisher implements Publisher for Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, o *models.Observation) error {
	return p.producer.Publish(ctx, p.topic, []byte(o.Station), map[string]interface{}{
		"station": o.Station,
		"t":       o.Timestamp,
		"v":       o.Value,
		"src":     o.Source,
	})
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, obs []*models.Observation) error {
	if len(obs) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(obs))
	for i, o := range obs {
		msgs[i] = pkgkafka.Message{
			Key: []byte(o.Station),
			Value: map[string]interface{}{
				"station": o.Station,
				"t":       o.Timestamp,
				"v":       o.Value,
				"src":     o.Source,
			},
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
