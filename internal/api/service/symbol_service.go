package service

import (
	"context"
	"strings"
	"time"

	"traderizz/internal/api/config"
	"traderizz/internal/api/dto"
	"traderizz/internal/api/repository"
	"traderizz/internal/entity"
	"traderizz/pkg/common"
	"traderizz/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"
)

// SymbolService defines the interface for the tradable symbol directory.
type SymbolService interface {
	Search(ctx context.Context, query string) ([]dto.SymbolResponse, error)
	StartRefresher(ctx context.Context) error
}

// NewSymbolService creates a new symbol service. The directory is a static
// list: it is cached in-process and search filters the cached copy, the same
// way the mobile client filtered its bundled list.
func NewSymbolService(symbolRepo repository.SymbolRepository, cfg config.Config, logger *logger.Logger) (SymbolService, error) {
	ttl := 24 * time.Hour
	if cfg.Symbols.CacheTTL != "" {
		parsed, err := time.ParseDuration(cfg.Symbols.CacheTTL)
		if err != nil {
			return nil, err
		}
		ttl = parsed
	}

	refreshCron := cfg.Symbols.RefreshCron
	if refreshCron == "" {
		refreshCron = common.DefaultSymbolRefreshCron
	}

	return &symbolService{
		symbolRepo:  symbolRepo,
		cache:       gocache.New(ttl, 2*ttl),
		refreshCron: refreshCron,
		logger:      logger,
	}, nil
}

type symbolService struct {
	symbolRepo  repository.SymbolRepository
	cache       *gocache.Cache
	refreshCron string
	logger      *logger.Logger
}

// Search returns the symbols whose ticker or name contains the query,
// case-insensitively. An empty query returns the full directory.
func (s *symbolService) Search(ctx context.Context, query string) ([]dto.SymbolResponse, error) {
	symbols, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	matches := make([]dto.SymbolResponse, 0, len(symbols))
	for _, symbol := range symbols {
		if query == "" ||
			strings.Contains(strings.ToLower(symbol.Symbol), query) ||
			strings.Contains(strings.ToLower(symbol.Name), query) {
			matches = append(matches, dto.SymbolResponse{Symbol: symbol.Symbol, Name: symbol.Name})
		}
	}
	return matches, nil
}

// StartRefresher reloads the cached directory on the configured cron schedule
// until the context is canceled.
func (s *symbolService) StartRefresher(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.refreshCron, func() {
		if err := s.reload(context.Background()); err != nil {
			s.logger.Error("Failed to refresh symbol directory", logger.ErrorField(err))
			return
		}
		s.logger.Info("Symbol directory refreshed")
	}); err != nil {
		return err
	}
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return nil
}

func (s *symbolService) directory(ctx context.Context) ([]entity.Symbol, error) {
	if cached, found := s.cache.Get(common.SymbolDirectoryCacheKey); found {
		return cached.([]entity.Symbol), nil
	}

	symbols, err := s.symbolRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(common.SymbolDirectoryCacheKey, symbols, gocache.DefaultExpiration)
	return symbols, nil
}

func (s *symbolService) reload(ctx context.Context) error {
	symbols, err := s.symbolRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	s.cache.Set(common.SymbolDirectoryCacheKey, symbols, gocache.DefaultExpiration)
	return nil
}
