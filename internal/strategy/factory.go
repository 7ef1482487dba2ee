package strategy

import (
	"fmt"

	"signal_bot/internal/modules/config"
)

func NewEngine(cfg *config.Config) (Engine, error) {
	offsets := Offsets{
		StopLoss:    cfg.Trading.StopLossOffset,
		TakeProfit1: cfg.Trading.TakeProfit1Offset,
		TakeProfit2: cfg.Trading.TakeProfit2Offset,
	}
	switch cfg.Trading.Strategy {
	case NameBarDirection, "":
		return NewBarDirection(offsets), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Trading.Strategy)
	}
}
