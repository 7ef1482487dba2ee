package journal

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"

	"signal_bot/internal/models"
	"signal_bot/pkg/db"
	"signal_bot/pkg/logger"
)

// Journal: журнал событий по сделкам, только запись.
// На старте ничего не читается: состояние между рестартами не восстанавливаем.
type Journal interface {
	Publish(ctx context.Context, ev models.Event)
}

const createTable = `
CREATE TABLE IF NOT EXISTS trade_events (
	id         BIGSERIAL PRIMARY KEY,
	kind       TEXT        NOT NULL,
	trade_id   TEXT        NOT NULL DEFAULT '',
	grp        TEXT        NOT NULL DEFAULT '',
	direction  TEXT        NOT NULL DEFAULT '',
	strike     DOUBLE PRECISION NOT NULL DEFAULT 0,
	status     TEXT        NOT NULL DEFAULT '',
	price      DOUBLE PRECISION NOT NULL DEFAULT 0,
	payload    JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

const insertEvent = `
INSERT INTO trade_events (kind, trade_id, grp, direction, strike, status, price, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Postgres пишет события в trade_events.
type Postgres struct {
	tx db.TxManager
}

func NewPostgres(tx db.TxManager) *Postgres {
	return &Postgres{tx: tx}
}

// Migrate создаёт таблицу, если её нет.
func (p *Postgres) Migrate(ctx context.Context) error {
	return p.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, createTable)
		return err
	})
}

func (p *Postgres) Publish(ctx context.Context, ev models.Event) {
	if err := p.insert(ctx, ev); err != nil {
		logger.Error("[JOURNAL] %s %s: %v", ev.Kind, ev.TradeID, err)
	}
}

func (p *Postgres) insert(ctx context.Context, ev models.Event) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Journal.insert: %w", err)
		}
	}()

	payload, err := sonic.Marshal(ev)
	if err != nil {
		return err
	}
	return p.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertEvent,
			string(ev.Kind), ev.TradeID, ev.Group, string(ev.Direction),
			ev.Strike, string(ev.Status), ev.Price, payload, ev.At,
		)
		return err
	})
}

// Noop: журнал выключен (DATABASE_DSN пустой).
type Noop struct{}

func (Noop) Publish(context.Context, models.Event) {}
