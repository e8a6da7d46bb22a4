// Package refseq issues the human-readable reference numbers stamped on every
// submitted record, formatted "{PREFIX}-{YEAR}-{SEQ}". The sequence is an
// atomic counter scoped per (prefix, year); two submissions can never share a
// number regardless of timing.
package refseq

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
)

const (
	PrefixBooking          = "BOOK"
	PrefixImportInspection = "IMP"
	PrefixFarmInspection   = "FARM"
	PrefixSurveillance     = "PEST"
)

// Sequencer hands out the next value of a named counter. Implementations
// must be safe for concurrent use; all submissions for the same scope
// serialize through it.
type Sequencer interface {
	Next(ctx context.Context, scope string) (int64, error)
}

// RedisSequencer backs the counter with a Redis INCR so multiple service
// instances share one sequence per scope.
type RedisSequencer struct {
	client *redis.Client
}

func NewRedisSequencer(client *redis.Client) *RedisSequencer {
	return &RedisSequencer{client: client}
}

func (s *RedisSequencer) Next(ctx context.Context, scope string) (int64, error) {
	n, err := s.client.Incr(ctx, "refseq:"+scope).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence %s: %w", scope, err)
	}
	return n, nil
}

// MemorySequencer is the single-node fallback, also used by tests.
type MemorySequencer struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewMemorySequencer() *MemorySequencer {
	return &MemorySequencer{counters: make(map[string]int64)}
}

func (s *MemorySequencer) Next(_ context.Context, scope string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[scope]++
	return s.counters[scope], nil
}

// Generator formats reference numbers. Width is the zero-padded digit count
// of the sequence part; overflowing it returns ExhaustedSequence.
type Generator struct {
	seq   Sequencer
	width int
}

func NewGenerator(seq Sequencer, width int) *Generator {
	return &Generator{seq: seq, width: width}
}

// Generate returns the next reference for prefix at time t, e.g.
// "FARM-2026-000042".
func (g *Generator) Generate(ctx context.Context, prefix string, t time.Time) (string, error) {
	year := t.Year()
	scope := fmt.Sprintf("%s:%d", prefix, year)

	n, err := g.seq.Next(ctx, scope)
	if err != nil {
		return "", err
	}

	if n >= pow10(g.width) {
		return "", &models.ExhaustedSequence{Prefix: prefix, Year: year, Width: g.width}
	}

	return fmt.Sprintf("%s-%d-%0*d", prefix, year, g.width, n), nil
}

// GenerateExtended is the fallback format used once a scope is exhausted. The
// UUID suffix keeps the number unique without a counter; collision probability
// over a 12-hex-digit random suffix is negligible for this volume.
func (g *Generator) GenerateExtended(prefix string, t time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%s-%d-X%s", prefix, t.Year(), strings.ToUpper(suffix))
}

func pow10(n int) int64 {
	result := int64(1)
	for i := 0; i < n; i++ {
		result *= 10
	}
	return result
}
