// Package redis provides a Redis-backed jam ban store. Ban records are
// small JSON documents keyed by participant, replaced wholesale on upsert.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"warden/internal/jam"
)

var banLookupDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "warden_jam_ban_lookup_duration_ms",
	Help:    "Latency of jam ban record lookups in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

const banKeyPrefix = "jam:ban:"

// BanStore is a Redis-backed implementation of jam.BanStore. The gate runs
// on every signup attempt, so lookups sit on the request path and are kept
// to a single GET.
type BanStore struct {
	client *redis.Client
}

// NewBanStore constructs a Redis-backed ban store.
func NewBanStore(client *redis.Client) *BanStore {
	return &BanStore{client: client}
}

// ListByParticipant returns the participant's ban records. A participant has
// at most one record under this scheme; no record yields an empty result.
func (s *BanStore) ListByParticipant(ctx context.Context, userID string) ([]jam.BanRecord, error) {
	start := time.Now()
	defer func() {
		banLookupDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	raw, err := s.client.Get(ctx, banKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ban record: %w", err)
	}

	var record jam.BanRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode ban record: %w", err)
	}
	return []jam.BanRecord{record}, nil
}

// Upsert replaces the participant's ban record.
func (s *BanStore) Upsert(ctx context.Context, record jam.BanRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode ban record: %w", err)
	}
	if err := s.client.Set(ctx, banKeyPrefix+record.Participant, raw, 0).Err(); err != nil {
		return fmt.Errorf("set ban record: %w", err)
	}
	return nil
}
