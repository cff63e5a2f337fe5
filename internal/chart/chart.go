// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package chart renders a country's observed and forecast production as a
// PNG line chart.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/tomtom215/coffeecast/internal/forecast"
	"github.com/tomtom215/coffeecast/internal/production"
)

// ErrNothingToPlot is returned when both series are empty.
var ErrNothingToPlot = errors.New("no data to plot")

// pngDPI is the resolution gonum's PNG canvas renders at.
const pngDPI = 96

var (
	historyColor  = color.RGBA{R: 111, G: 78, B: 55, A: 255}
	forecastColor = color.RGBA{R: 214, G: 96, B: 39, A: 255}
	markerColor   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// Options controls the output size in pixels.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions is a 960x480 chart.
func DefaultOptions() Options {
	return Options{Width: 960, Height: 480}
}

// Render draws history as a solid line with points and series as a dashed
// line continuing from the last observation, with a vertical marker at the
// last observed year, and writes the PNG to w.
func Render(w io.Writer, title string, history []production.Record, series forecast.Series, opts Options) error {
	if len(history) == 0 && len(series) == 0 {
		return ErrNothingToPlot
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions()
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Production"
	p.X.Tick.Marker = yearTicks{}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	histXY := make(plotter.XYs, len(history))
	for i, r := range history {
		histXY[i] = plotter.XY{X: float64(r.Year), Y: r.Production}
	}

	fcXY := make(plotter.XYs, 0, len(series)+1)
	if len(history) > 0 {
		fcXY = append(fcXY, histXY[len(histXY)-1])
	}
	for _, pt := range series {
		fcXY = append(fcXY, plotter.XY{X: float64(pt.Year), Y: pt.PredictedProduction})
	}

	if len(histXY) > 0 {
		line, points, err := plotter.NewLinePoints(histXY)
		if err != nil {
			return fmt.Errorf("history line: %w", err)
		}
		line.Color = historyColor
		line.Width = vg.Points(2)
		points.Shape = draw.CircleGlyph{}
		points.Color = historyColor
		points.Radius = vg.Points(2.5)
		p.Add(line, points)
		p.Legend.Add("Historical", line, points)
	}

	if len(series) > 0 {
		line, err := plotter.NewLine(fcXY)
		if err != nil {
			return fmt.Errorf("forecast line: %w", err)
		}
		line.Color = forecastColor
		line.Width = vg.Points(2)
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(line)
		p.Legend.Add("Forecast", line)
	}

	if len(history) > 0 && len(series) > 0 {
		lo, hi := yRange(histXY, fcXY)
		last := histXY[len(histXY)-1].X
		sep, err := plotter.NewLine(plotter.XYs{{X: last, Y: lo}, {X: last, Y: hi}})
		if err != nil {
			return fmt.Errorf("separator line: %w", err)
		}
		sep.Color = markerColor
		sep.Width = vg.Points(1)
		sep.Dashes = []vg.Length{vg.Points(2), vg.Points(3)}
		p.Add(sep)
	}

	width := vg.Length(opts.Width) * vg.Inch / pngDPI
	height := vg.Length(opts.Height) * vg.Inch / pngDPI
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

func yRange(sets ...plotter.XYs) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, xys := range sets {
		for _, xy := range xys {
			lo = math.Min(lo, xy.Y)
			hi = math.Max(hi, xy.Y)
		}
	}
	return lo, hi
}

// yearTicks labels whole years only, thinning labels on long ranges.
type yearTicks struct{}

func (yearTicks) Ticks(lo, hi float64) []plot.Tick {
	first, last := int(math.Ceil(lo)), int(math.Floor(hi))
	step := 1
	for (last-first)/step > 12 {
		switch step {
		case 1:
			step = 2
		case 2:
			step = 5
		default:
			step *= 2
		}
	}

	var ticks []plot.Tick
	for year := first; year <= last; year++ {
		tick := plot.Tick{Value: float64(year)}
		if year%step == 0 {
			tick.Label = strconv.Itoa(year)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}
