package runner

import (
	"fmt"

	"signal_bot/internal/ledger"
	"signal_bot/internal/models"
)

func p(v float64) string { return models.FormatPrice(v) }

func newTradeText(t models.Trade) string {
	return fmt.Sprintf(
		"🆕 New Trade Alert (%s) 🆕\n"+
			"%s | Strike: %s\n"+
			"Entry: %s | SL: %s\n"+
			"TP1: %s | TP2: %s\n"+
			"Expiry: %s ⚠️ Trade on your own risk",
		t.Group,
		t.Direction, p(t.Strike),
		p(t.Entry), p(t.StopLoss),
		p(t.TakeProfit1), p(t.TakeProfit2),
		t.ExpiryDate(),
	)
}

func adjustedText(t models.Trade) string {
	return fmt.Sprintf(
		"⚠️ Trade Adjusted ⚠️\n"+
			"Original Strike: %s -> Adjusted Strike: %s\n"+
			"%s | Expiry: %s",
		p(t.OriginalStrike), p(t.Strike), t.Direction, t.ExpiryDate(),
	)
}

func expiryWarningText(t models.Trade, hoursLeft float64) string {
	return fmt.Sprintf("⏰ Expiry Warning ⏰\n%s %s | Expires in %dh", t.Group, t.Label(), int(hoursLeft))
}

// transitionText: текст для события монитора.
func transitionText(kind models.EventKind, t models.Trade) string {
	switch kind {
	case models.EventExpired:
		return fmt.Sprintf("❌ Trade Expired ❌\n%s %s | Expired", t.Group, t.Label())
	case models.EventCompleted:
		return fmt.Sprintf("✅ Trade Success ✅\n%s %s 🎯 TP2 Hit", t.Group, t.Label())
	case models.EventProgress:
		return fmt.Sprintf("✅ Trade Progress ✅\n%s %s 🎯 TP1 Hit", t.Group, t.Label())
	case models.EventFailed:
		return fmt.Sprintf("❌ Trade Failed ❌\n%s %s 🔴 Hit SL", t.Group, t.Label())
	case models.EventEntered:
		return fmt.Sprintf("🚀 Trade Entered 🚀\n%s %s 🟢", t.Group, t.Label())
	}
	return fmt.Sprintf("%s %s %s", kind, t.Group, t.Label())
}

func summaryText(c ledger.Counts) string {
	return fmt.Sprintf(
		"📊 Daily Trade Summary 📊\n"+
			"Total Trades Sent: %d\n"+
			"✅ Successful Trades: %d\n"+
			"❌ Failed Trades: %d\n"+
			"⚠️ Cancelled Trades: %d\n"+
			"🔧 Adjusted Strikes: %d\n",
		c.Total(), c.Successful, c.Failed, c.Cancelled, c.Adjusted,
	)
}
