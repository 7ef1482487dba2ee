package service

import (
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	os.Exit(m.Run())
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	ev := models.Event{
		Kind: models.EventCompleted, TradeID: "t-1", Group: "Nifty50",
		Direction: models.DirectionCall, Strike: 22500, Status: models.StatusCompleted,
		Price: 22610, Text: "done", At: time.Unix(1710052800, 0).UTC(),
	}
	hub.Publish(context.Background(), ev)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got models.Event
	require.NoError(t, sonic.Unmarshal(msg, &got))
	assert.Equal(t, ev.TradeID, got.TradeID)
	assert.Equal(t, ev.Kind, got.Kind)
	assert.Equal(t, ev.Price, got.Price)
	assert.True(t, ev.At.Equal(got.At))
}

func TestHubDropsClosedClient(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	_ = conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

type countSink struct{ n int }

func (c *countSink) Publish(context.Context, models.Event) { c.n++ }

func TestFanout(t *testing.T) {
	a, b := &countSink{}, &countSink{}
	f := Fanout{a, nil, b}
	f.Publish(context.Background(), models.Event{Kind: models.EventSummary})
	assert.Equal(t, 1, a.n)
	assert.Equal(t, 1, b.n)
}
