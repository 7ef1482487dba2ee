package runner

import (
	"context"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"
)

// SummaryOnce срабатывает только в минуту summary_at и не чаще раза в день.
// Сводка читает корзины и очищает их; сделки в работе не трогает.
func (r *Runner) SummaryOnce(ctx context.Context) bool {
	now := r.now()
	if now.Hour() != r.set.SummaryHour || now.Minute() != r.set.SummaryMinute {
		return false
	}
	day := now.Format(dayLayout)
	if r.lastSummaryDay == day {
		return false
	}

	span, ctx := tracing.StartSpan(ctx, "runner.summary")
	defer span.Finish()

	r.lastSummaryDay = day
	counts := r.ledger.Drain()
	text := summaryText(counts)

	r.send(ctx, models.Event{Kind: models.EventSummary, Text: text, At: now}, "")
	r.state.TouchSummary(now)
	logger.Info("[SUM] сводка за %s: total=%d ok=%d fail=%d cancel=%d",
		day, counts.Total(), counts.Successful, counts.Failed, counts.Cancelled)
	return true
}
