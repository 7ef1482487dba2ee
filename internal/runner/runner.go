package runner

import (
	"context"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"signal_bot/internal/chart"
	"signal_bot/internal/ledger"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	events "signal_bot/internal/modules/events/service"
	health "signal_bot/internal/modules/health/service"
	market "signal_bot/internal/modules/market/service"
	"signal_bot/internal/notify"
	"signal_bot/internal/strategy"
	"signal_bot/pkg/logger"
)

// Settings: статичные параметры циклов, берутся из конфига один раз.
type Settings struct {
	Symbols  []config.Symbol
	Lookback string
	Interval string

	MaxDailyTrades     int
	GenerationInterval time.Duration
	MonitoringInterval time.Duration
	SummaryInterval    time.Duration
	ExpiryWarning      time.Duration
	SummaryHour        int
	SummaryMinute      int
	EntryTolerance     float64
}

func NewSettings(cfg *config.Config) (Settings, error) {
	h, m, err := cfg.SummaryClock()
	if err != nil {
		return Settings{}, err
	}
	tol := cfg.Trading.EntryTolerance
	if tol <= 0 {
		tol = ledger.EntryTolerance
	}
	return Settings{
		Symbols:            cfg.Symbols,
		Lookback:           cfg.Market.Lookback,
		Interval:           cfg.Market.Interval,
		MaxDailyTrades:     cfg.Trading.MaxDailyTrades,
		GenerationInterval: cfg.Trading.GenerationInterval,
		MonitoringInterval: cfg.Trading.MonitoringInterval,
		SummaryInterval:    cfg.Trading.SummaryInterval,
		ExpiryWarning:      cfg.ExpiryWarning(),
		SummaryHour:        h,
		SummaryMinute:      m,
		EntryTolerance:     tol,
	}, nil
}

// Runner: три независимых цикла над общим Ledger:
// генерация сделок, мониторинг цен, дневная сводка.
type Runner struct {
	set Settings

	gw     market.Gateway
	engine strategy.Engine
	charts chart.Renderer
	n      notify.Notifier
	sink   events.Sink
	ledger *ledger.Ledger
	state  *health.State

	counter *DailyCounter

	// день последней сводки; трогает только цикл сводки
	lastSummaryDay string

	now func() time.Time
}

func New(
	set Settings,
	gw market.Gateway,
	engine strategy.Engine,
	charts chart.Renderer,
	n notify.Notifier,
	sink events.Sink,
	l *ledger.Ledger,
	state *health.State,
) *Runner {
	if sink == nil {
		sink = events.Fanout{}
	}
	if state == nil {
		state = health.NewState()
	}
	return &Runner{
		set:     set,
		gw:      gw,
		engine:  engine,
		charts:  charts,
		n:       n,
		sink:    sink,
		ledger:  l,
		state:   state,
		counter: NewDailyCounter(set.MaxDailyTrades),
		now:     time.Now,
	}
}

// Run крутит все три цикла до отмены ctx.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.loop(ctx, "GEN", r.set.GenerationInterval, r.GenerateOnce)
		return nil
	})
	g.Go(func() error {
		r.loop(ctx, "MON", r.set.MonitoringInterval, r.MonitorOnce)
		return nil
	})
	g.Go(func() error {
		r.loop(ctx, "SUM", r.set.SummaryInterval, func(ctx context.Context) { r.SummaryOnce(ctx) })
		return nil
	})
	r.state.SetReady(true)
	logger.Info("[RUNNER] ▶️ циклы запущены: символов=%d лимит=%d/день", len(r.set.Symbols), r.set.MaxDailyTrades)

	err := g.Wait()
	r.state.SetReady(false)
	return err
}

// loop: шаг сразу, потом раз в every. Паника шага не роняет цикл.
func (r *Runner) loop(ctx context.Context, tag string, every time.Duration, step func(context.Context)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		r.safeStep(ctx, tag, step)
		select {
		case <-ctx.Done():
			logger.Info("[%s] цикл остановлен", tag)
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) safeStep(ctx context.Context, tag string, step func(context.Context)) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("[%s] panic: %v\n%s", tag, p, debug.Stack())
		}
	}()
	step(ctx)
}

// send: уведомление в чат + событие в стрим/журнал.
func (r *Runner) send(ctx context.Context, ev models.Event, imagePath string) {
	r.n.Notify(ctx, ev.Text, imagePath)
	r.sink.Publish(ctx, ev)
}

func (r *Runner) tradeEvent(kind models.EventKind, t models.Trade, price float64, text string) models.Event {
	return models.NewTradeEvent(kind, t, price, text, r.now())
}

// Counter: сколько сделок группа уже отправила сегодня.
func (r *Runner) Counter(group string) int { return r.counter.Count(group) }
