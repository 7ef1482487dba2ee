package helper

import (
	"math"
	"strings"
)

// NormInterval приводит таймфрейм к виду, который понимает chart API.
func NormInterval(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	switch s {
	case "1h", "60m":
		return "60m"
	case "1d", "d":
		return "1d"
	case "":
		return "5m"
	default:
		return s
	}
}

// RoundToStep округляет цену к ближайшему шагу страйка (22537 -> 22500 при шаге 100).
func RoundToStep(px, step float64) float64 {
	if step <= 0 {
		return px
	}
	return math.Round(px/step) * step
}

// TrimTicker убирает префикс индекса Yahoo (^NSEI -> NSEI), годится для имён файлов.
func TrimTicker(ticker string) string {
	return strings.TrimLeft(ticker, "^")
}
