package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"aureus/domain"
)

func sampleResult() domain.SimulationResult {
	var r domain.SimulationResult
	var invested float64
	for m := 0; m <= 12; m++ {
		invested += 100
		r.MonthlyData = append(r.MonthlyData, domain.MonthlyData{
			Month:              m,
			CumulativeInvested: invested,
			PortfolioValue:     invested * (1 + float64(m)/100),
		})
	}
	return r
}

func TestRender_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), DefaultOptions()))

	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))

	cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Positive(t, cfg.Width)
	assert.Greater(t, cfg.Width, cfg.Height)
}

func TestRender_ZeroSizeUsesDefaults(t *testing.T) {
	var withDefaults, zeroSized bytes.Buffer
	require.NoError(t, Render(&withDefaults, sampleResult(), DefaultOptions()))
	require.NoError(t, Render(&zeroSized, sampleResult(), Options{Title: "t"}))

	a, err := png.DecodeConfig(bytes.NewReader(withDefaults.Bytes()))
	require.NoError(t, err)
	b, err := png.DecodeConfig(bytes.NewReader(zeroSized.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRender_CustomSize(t *testing.T) {
	var small, large bytes.Buffer
	require.NoError(t, Render(&small, sampleResult(), Options{Width: 2 * vg.Inch, Height: 2 * vg.Inch}))
	require.NoError(t, Render(&large, sampleResult(), Options{Width: 6 * vg.Inch, Height: 6 * vg.Inch}))

	s, err := png.DecodeConfig(bytes.NewReader(small.Bytes()))
	require.NoError(t, err)
	l, err := png.DecodeConfig(bytes.NewReader(large.Bytes()))
	require.NoError(t, err)
	assert.Less(t, s.Width, l.Width)
}

func TestRender_EmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, domain.SimulationResult{}, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyLedger)
	assert.Zero(t, buf.Len())
}
