package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundToStep(t *testing.T) {
	assert.Equal(t, 22500.0, RoundToStep(22537, 100))
	assert.Equal(t, 22600.0, RoundToStep(22550, 100))
	assert.Equal(t, 22449.0, RoundToStep(22449, 0))
}

func TestNormInterval(t *testing.T) {
	assert.Equal(t, "60m", NormInterval("1H"))
	assert.Equal(t, "1d", NormInterval("d"))
	assert.Equal(t, "5m", NormInterval(""))
	assert.Equal(t, "15m", NormInterval(" 15m "))
}

func TestTrimTicker(t *testing.T) {
	assert.Equal(t, "NSEI", TrimTicker("^NSEI"))
	assert.Equal(t, "AAPL", TrimTicker("AAPL"))
}
