// Package chart renders simulation ledgers as images.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"aureus/domain"
)

var ErrEmptyLedger = errors.New("simulation has no monthly data")

var (
	valueColor    = color.RGBA{R: 251, G: 191, B: 36, A: 255} // amber
	investedColor = color.RGBA{R: 59, G: 130, B: 246, A: 255} // blue
)

type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

func DefaultOptions() Options {
	return Options{
		Title:  "Portfolio Growth Over Time",
		Width:  8 * vg.Inch,
		Height: 4 * vg.Inch,
	}
}

// Render draws portfolio value and cumulative capital against the month
// index and writes the chart to w as PNG.
func Render(w io.Writer, result domain.SimulationResult, opts Options) error {
	if len(result.MonthlyData) == 0 {
		return ErrEmptyLedger
	}
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}

	value := make(plotter.XYs, len(result.MonthlyData))
	invested := make(plotter.XYs, len(result.MonthlyData))
	for i, row := range result.MonthlyData {
		value[i].X = float64(row.Month)
		value[i].Y = row.PortfolioValue
		invested[i].X = float64(row.Month)
		invested[i].Y = row.CumulativeInvested
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "USD"
	p.Add(plotter.NewGrid())

	valueLine, err := plotter.NewLine(value)
	if err != nil {
		return fmt.Errorf("portfolio value line: %w", err)
	}
	valueLine.Color = valueColor
	valueLine.Width = vg.Points(2)

	investedLine, err := plotter.NewLine(invested)
	if err != nil {
		return fmt.Errorf("invested line: %w", err)
	}
	investedLine.Color = investedColor
	investedLine.Width = vg.Points(2)
	investedLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}

	p.Add(valueLine, investedLine)
	p.Legend.Add("Portfolio Value", valueLine)
	p.Legend.Add("Total Invested", investedLine)
	p.Legend.Top = true
	p.Legend.Left = true

	wt, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return fmt.Errorf("create png canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
