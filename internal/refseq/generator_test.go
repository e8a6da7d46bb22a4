package refseq

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFormat(t *testing.T) {
	gen := NewGenerator(NewMemorySequencer(), 6)
	ts := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	ref, err := gen.Generate(context.Background(), PrefixBooking, ts)

	require.NoError(t, err)
	assert.Equal(t, "BOOK-2026-000001", ref)
}

func TestGenerateIncrementsPerScope(t *testing.T) {
	gen := NewGenerator(NewMemorySequencer(), 6)
	ts := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	first, err := gen.Generate(ctx, PrefixFarmInspection, ts)
	require.NoError(t, err)
	second, err := gen.Generate(ctx, PrefixFarmInspection, ts)
	require.NoError(t, err)

	assert.Equal(t, "FARM-2026-000001", first)
	assert.Equal(t, "FARM-2026-000002", second)

	// A different prefix or year starts its own sequence.
	other, err := gen.Generate(ctx, PrefixImportInspection, ts)
	require.NoError(t, err)
	assert.Equal(t, "IMP-2026-000001", other)

	nextYear, err := gen.Generate(ctx, PrefixFarmInspection, ts.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "FARM-2027-000001", nextYear)
}

func TestGenerateConcurrentUniqueness(t *testing.T) {
	const callers = 10000

	gen := NewGenerator(NewMemorySequencer(), 6)
	ts := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	refs := make(chan string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := gen.Generate(context.Background(), PrefixSurveillance, ts)
			assert.NoError(t, err)
			refs <- ref
		}()
	}
	wg.Wait()
	close(refs)

	seen := make(map[string]bool, callers)
	for ref := range refs {
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
	assert.Len(t, seen, callers)
}

func TestGenerateExhaustedSequence(t *testing.T) {
	gen := NewGenerator(NewMemorySequencer(), 1)
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	for i := 1; i <= 9; i++ {
		_, err := gen.Generate(ctx, PrefixBooking, ts)
		require.NoError(t, err)
	}

	_, err := gen.Generate(ctx, PrefixBooking, ts)
	var exhausted *models.ExhaustedSequence
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, PrefixBooking, exhausted.Prefix)
	assert.Equal(t, 2026, exhausted.Year)
}

func TestGenerateExtendedFallback(t *testing.T) {
	gen := NewGenerator(NewMemorySequencer(), 6)
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	ref := gen.GenerateExtended(PrefixBooking, ts)
	other := gen.GenerateExtended(PrefixBooking, ts)

	assert.True(t, strings.HasPrefix(ref, "BOOK-2026-X"))
	assert.NotEqual(t, ref, other)
}
