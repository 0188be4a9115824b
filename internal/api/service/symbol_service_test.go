package service

import (
	"context"
	"testing"

	"traderizz/internal/api/config"
	"traderizz/internal/entity"
	"traderizz/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSymbolRepo struct {
	symbols []entity.Symbol
	calls   int
}

func (r *fakeSymbolRepo) FindAll(_ context.Context) ([]entity.Symbol, error) {
	r.calls++
	return r.symbols, nil
}

func newTestSymbolService(t *testing.T, repo *fakeSymbolRepo) SymbolService {
	t.Helper()
	appLogger, err := logger.New("error", "json")
	require.NoError(t, err)
	cfg := config.Config{}
	cfg.Symbols.CacheTTL = "1h"
	svc, err := NewSymbolService(repo, cfg, appLogger)
	require.NoError(t, err)
	return svc
}

func directoryFixture() []entity.Symbol {
	return []entity.Symbol{
		{ID: 1, Symbol: "AAPL", Name: "Apple Inc."},
		{ID: 2, Symbol: "MSFT", Name: "Microsoft Corporation"},
		{ID: 3, Symbol: "CAT", Name: "Caterpillar Inc."},
	}
}

func TestSymbolSearchMatchesTickerAndName(t *testing.T) {
	svc := newTestSymbolService(t, &fakeSymbolRepo{symbols: directoryFixture()})
	ctx := context.Background()

	matches, err := svc.Search(ctx, "aap")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "AAPL", matches[0].Symbol)

	// Substring of the company name, any case.
	matches, err = svc.Search(ctx, "MICRO")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "MSFT", matches[0].Symbol)

	// "cat" hits both the CAT ticker and nothing else.
	matches, err = svc.Search(ctx, "cat")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "CAT", matches[0].Symbol)
}

func TestSymbolSearchEmptyQueryReturnsAll(t *testing.T) {
	svc := newTestSymbolService(t, &fakeSymbolRepo{symbols: directoryFixture()})

	matches, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestSymbolSearchNoMatches(t *testing.T) {
	svc := newTestSymbolService(t, &fakeSymbolRepo{symbols: directoryFixture()})

	matches, err := svc.Search(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSymbolDirectoryIsCached(t *testing.T) {
	repo := &fakeSymbolRepo{symbols: directoryFixture()}
	svc := newTestSymbolService(t, repo)
	ctx := context.Background()

	_, err := svc.Search(ctx, "aapl")
	require.NoError(t, err)
	_, err = svc.Search(ctx, "msft")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls, "the directory must load from the repository once")
}
