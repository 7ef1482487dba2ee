package journal

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	os.Exit(m.Run())
}

// fakeTx перехватывает Exec, остальное от pgx.Tx не используется.
type fakeTx struct {
	pgx.Tx
	sql  []string
	args [][]any
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = append(f.sql, sql)
	f.args = append(f.args, args)
	return pgconn.CommandTag{}, nil
}

type fakeTxManager struct {
	tx  *fakeTx
	err error
}

func (m *fakeTxManager) RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx, m.tx)
}

func TestPostgresPublish(t *testing.T) {
	tm := &fakeTxManager{tx: &fakeTx{}}
	j := NewPostgres(tm)

	require.NoError(t, j.Migrate(context.Background()))

	at := time.Unix(1710052800, 0)
	j.Publish(context.Background(), models.Event{
		Kind: models.EventFailed, TradeID: "t-9", Group: "Sensex",
		Direction: models.DirectionPut, Strike: 73000, Status: models.StatusFailed,
		Price: 73025, Text: "sl", At: at,
	})

	require.Len(t, tm.tx.sql, 2)
	assert.Contains(t, tm.tx.sql[0], "CREATE TABLE IF NOT EXISTS trade_events")
	assert.Contains(t, tm.tx.sql[1], "INSERT INTO trade_events")

	args := tm.tx.args[1]
	require.Len(t, args, 9)
	assert.Equal(t, "failed", args[0])
	assert.Equal(t, "t-9", args[1])
	assert.Equal(t, "PUT", args[3])
	assert.Equal(t, 73025.0, args[6])
	assert.Contains(t, string(args[7].([]byte)), `"trade_id":"t-9"`)
	assert.Equal(t, at, args[8])
}

func TestPostgresPublishErrorSwallowed(t *testing.T) {
	j := NewPostgres(&fakeTxManager{err: errors.New("conn refused")})
	assert.NotPanics(t, func() {
		j.Publish(context.Background(), models.Event{Kind: models.EventSummary})
	})
	assert.Error(t, j.insert(context.Background(), models.Event{Kind: models.EventSummary}))
}

func TestNoop(t *testing.T) {
	var j Journal = Noop{}
	j.Publish(context.Background(), models.Event{})
}
