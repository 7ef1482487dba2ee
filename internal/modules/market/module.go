package market

import (
	"fmt"
	"time"

	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/market/service"
)

// NewGateway собирает шлюз по market.provider.
func NewGateway(cfg *config.Config) (service.Gateway, error) {
	y := service.NewYahoo(cfg.Market.BaseURL, cfg.Trading.StrikeStep, cfg.Market.RatePerSec, cfg.Market.Timeout)

	switch cfg.Market.Provider {
	case "yahoo", "":
		return y, nil
	case "simulated":
		return service.WithPrices(y, service.NewSimulated(uint64(time.Now().UnixNano()))), nil
	default:
		return nil, fmt.Errorf("unknown market provider %q", cfg.Market.Provider)
	}
}

func Module() fx.Option {
	return fx.Module("market",
		fx.Provide(
			NewGateway,
		),
	)
}
