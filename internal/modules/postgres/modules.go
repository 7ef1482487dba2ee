package postgres

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"signal_bot/internal/journal"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/db"
	"signal_bot/pkg/logger"
)

// NewJournal: postgres-журнал, если задан DSN, иначе Noop.
func NewJournal(lc fx.Lifecycle, cfg *config.Config) (journal.Journal, error) {
	if cfg.DB == "" {
		logger.Info("[JOURNAL] DATABASE_DSN не задан, журнал выключен")
		return journal.Noop{}, nil
	}

	ctx := context.Background()
	poolMaster, err := db.NewPool(ctx, db.PoolConfig{
		DSN: cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create poolMaster: %w", err)
	}

	if err = poolMaster.Ping(ctx); err != nil {
		poolMaster.Close()
		return nil, err
	}

	txm := db.NewPgTxManager(poolMaster)
	j := journal.NewPostgres(txm)
	if err := j.Migrate(ctx); err != nil {
		txm.Close()
		return nil, fmt.Errorf("journal migrate: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			txm.Close()
			return nil
		},
	})
	return j, nil
}

func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			NewJournal,
		),
	)
}
