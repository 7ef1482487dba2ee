package service

import (
	"context"
	"errors"

	"signal_bot/internal/models"
)

// ErrNoData: провайдер ничего не вернул; группу пропускаем до следующего цикла.
var ErrNoData = errors.New("market: no data")

// Gateway: источник рыночных данных.
type Gateway interface {
	// Series отдаёт свечи за lookback с шагом interval, старые первыми.
	Series(ctx context.Context, symbol, lookback, interval string) (models.Series, error)
	// Price: текущая цена для страйка/направления сделки.
	Price(ctx context.Context, symbol string, strike float64, dir models.Direction) (float64, error)
}

// PriceSource: только цена, без свечей.
type PriceSource interface {
	Price(ctx context.Context, symbol string, strike float64, dir models.Direction) (float64, error)
}

// withPrices подменяет источник цены, свечи берёт у base.
type withPrices struct {
	base   Gateway
	prices PriceSource
}

func (w *withPrices) Series(ctx context.Context, symbol, lookback, interval string) (models.Series, error) {
	return w.base.Series(ctx, symbol, lookback, interval)
}

func (w *withPrices) Price(ctx context.Context, symbol string, strike float64, dir models.Direction) (float64, error) {
	return w.prices.Price(ctx, symbol, strike, dir)
}

// WithPrices: свечи от base, цены от prices.
func WithPrices(base Gateway, prices PriceSource) Gateway {
	return &withPrices{base: base, prices: prices}
}
