package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/market"
	service "signal_bot/internal/modules/market/service"
	"signal_bot/internal/strategy"
	"signal_bot/pkg/logger"
)

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [group]",
		Short: "Fetch data once and print validated trade candidates (no notifications)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.InitNop()

			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			gw, err := market.NewGateway(cfg)
			if err != nil {
				return err
			}
			engine, err := strategy.NewEngine(cfg)
			if err != nil {
				return err
			}

			symbols := cfg.Symbols
			if len(args) == 1 {
				s, ok := cfg.SymbolByName(args[0])
				if !ok {
					return fmt.Errorf("unknown group %q", args[0])
				}
				symbols = []config.Symbol{s}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "GROUP\tDIR\tSTRIKE\tENTRY\tSL\tTP1\tTP2\tEXPIRY\tADJUSTED")
			for _, sym := range symbols {
				series, err := gw.Series(ctx, sym.Ticker, cfg.Market.Lookback, cfg.Market.Interval)
				if err != nil {
					if errors.Is(err, service.ErrNoData) {
						fmt.Fprintf(w, "%s\t-\tno data\n", sym.Name)
						continue
					}
					return fmt.Errorf("%s: %w", sym.Name, err)
				}
				strikes := series.Strikes()
				for cand := range engine.Candidates(series, sym.Name, cfg.Trading.MaxDailyTrades, time.Now()) {
					_, t := strategy.Validate(cand, strikes)
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
						t.Group, t.Direction, models.FormatPrice(t.Strike), models.FormatPrice(t.Entry),
						models.FormatPrice(t.StopLoss), models.FormatPrice(t.TakeProfit1),
						models.FormatPrice(t.TakeProfit2), t.ExpiryDate(), t.Adjusted())
				}
			}
			return w.Flush()
		},
	}
}
