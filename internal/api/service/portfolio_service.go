package service

import (
	"context"

	"traderizz/internal/api/dto"
	"traderizz/internal/api/repository"
	"traderizz/internal/entity"
	"traderizz/internal/ledger"
	"traderizz/pkg/logger"
)

// PortfolioService owns the save/load boundary around the position ledger:
// per user, holdings and realized profits persist in the database, and every
// buy or sell runs through the pure ledger before the outcome is stored.
type PortfolioService interface {
	RecordBuy(ctx context.Context, userID uint, req *dto.RecordBuyRequest) (*dto.HoldingResponse, error)
	RecordSell(ctx context.Context, userID uint, req *dto.RecordSellRequest) (*dto.SellResponse, error)
	ListHoldings(ctx context.Context, userID uint) ([]dto.HoldingResponse, error)
	ProfitSeries(ctx context.Context, userID uint) (*dto.ProfitSeriesResponse, error)
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(holdingRepo repository.StockHoldingRepository, profitRepo repository.RealizedProfitRepository, logger *logger.Logger) PortfolioService {
	return &portfolioService{
		holdingRepo: holdingRepo,
		profitRepo:  profitRepo,
		logger:      logger,
	}
}

type portfolioService struct {
	holdingRepo repository.StockHoldingRepository
	profitRepo  repository.RealizedProfitRepository
	logger      *logger.Logger
}

// RecordBuy validates the raw input, merges the purchase into the user's
// position and persists the resulting lot.
func (s *portfolioService) RecordBuy(ctx context.Context, userID uint, req *dto.RecordBuyRequest) (*dto.HoldingResponse, error) {
	quantity, err := ledger.ParseQuantity("quantity", req.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := ledger.ParsePrice("price", req.Price)
	if err != nil {
		return nil, err
	}

	// The holdings are read under a row lock and written back in the same
	// transaction, so concurrent trades for one user serialize.
	var resp *dto.HoldingResponse
	err = s.holdingRepo.Transaction(ctx, func(repo repository.StockHoldingRepository) error {
		rows, err := repo.FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		book := ledger.FromState(holdingsToLots(rows), nil)
		lot, err := book.RecordBuy(req.Symbol, quantity, price, req.Date)
		if err != nil {
			return err
		}

		row := findHoldingRow(rows, lot.Symbol)
		if row == nil {
			row = &entity.StockHolding{UserID: userID, Symbol: lot.Symbol}
		}
		row.Quantity = lot.Quantity
		row.AverageCost = lot.AverageCost
		row.AsOfDate = lot.AsOfDate

		if err := repo.Save(ctx, row); err != nil {
			s.logger.Error("Failed to save holding", logger.ErrorField(err), logger.Field("user_id", userID), logger.Field("symbol", lot.Symbol))
			return err
		}

		resp = holdingToResponse(lot)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Buy recorded", logger.Field("user_id", userID), logger.Field("symbol", resp.Symbol), logger.Field("quantity", quantity))
	return resp, nil
}

// RecordSell validates the raw input, realizes profit against the blended
// average cost and persists the event plus the remaining position in one
// transaction.
func (s *portfolioService) RecordSell(ctx context.Context, userID uint, req *dto.RecordSellRequest) (*dto.SellResponse, error) {
	quantity, err := ledger.ParseQuantity("quantity", req.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := ledger.ParsePrice("price", req.Price)
	if err != nil {
		return nil, err
	}

	symbol := ledger.NormalizeSymbol(req.Symbol)

	var resp *dto.SellResponse
	err = s.holdingRepo.Transaction(ctx, func(repo repository.StockHoldingRepository) error {
		rows, err := repo.FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		book := ledger.FromState(holdingsToLots(rows), nil)
		event, err := book.RecordSell(req.Symbol, quantity, price, req.Date)
		if err != nil {
			return err
		}

		row := findHoldingRow(rows, symbol)

		profit := &entity.RealizedProfit{
			UserID:    userID,
			Symbol:    symbol,
			Quantity:  quantity,
			SellPrice: price,
			Date:      event.Date,
			Profit:    event.Profit,
		}

		remaining, open := book.Position(symbol)
		if open {
			row.Quantity = remaining.Quantity
			row.AverageCost = remaining.AverageCost
		}
		if err := repo.ApplySell(ctx, row, !open, profit); err != nil {
			s.logger.Error("Failed to apply sell", logger.ErrorField(err), logger.Field("user_id", userID), logger.Field("symbol", symbol))
			return err
		}

		resp = &dto.SellResponse{Symbol: symbol, Date: event.Date, Profit: event.Profit}
		if open {
			resp.Remaining = holdingToResponse(remaining)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sell recorded", logger.Field("user_id", userID), logger.Field("symbol", symbol), logger.Field("quantity", quantity), logger.Field("closed", resp.Remaining == nil))
	return resp, nil
}

// ListHoldings returns the user's open positions in the order they were first
// opened.
func (s *portfolioService) ListHoldings(ctx context.Context, userID uint) ([]dto.HoldingResponse, error) {
	rows, err := s.holdingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings := make([]dto.HoldingResponse, 0, len(rows))
	for _, lot := range ledger.FromState(holdingsToLots(rows), nil).Holdings() {
		holdings = append(holdings, *holdingToResponse(lot))
	}
	return holdings, nil
}

// ProfitSeries returns the chart-ready realized-profit series. With no
// realized profit yet both slices are empty, and clients render their
// no-data state.
func (s *portfolioService) ProfitSeries(ctx context.Context, userID uint) (*dto.ProfitSeriesResponse, error) {
	rows, err := s.profitRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	events := make([]ledger.RealizedProfitEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, ledger.RealizedProfitEvent{Date: row.Date, Profit: row.Profit})
	}

	series := ledger.AggregateByDate(events)
	return &dto.ProfitSeriesResponse{Dates: series.Dates, Totals: series.Totals}, nil
}

func holdingsToLots(rows []entity.StockHolding) []ledger.Lot {
	lots := make([]ledger.Lot, 0, len(rows))
	for _, row := range rows {
		lots = append(lots, ledger.Lot{
			Symbol:      row.Symbol,
			Quantity:    row.Quantity,
			AverageCost: row.AverageCost,
			AsOfDate:    row.AsOfDate,
		})
	}
	return lots
}

func findHoldingRow(rows []entity.StockHolding, symbol string) *entity.StockHolding {
	for i := range rows {
		if rows[i].Symbol == symbol {
			return &rows[i]
		}
	}
	return nil
}

func holdingToResponse(lot ledger.Lot) *dto.HoldingResponse {
	return &dto.HoldingResponse{
		Symbol:      lot.Symbol,
		Quantity:    lot.Quantity,
		AverageCost: lot.AverageCost,
		AsOfDate:    lot.AsOfDate,
	}
}
