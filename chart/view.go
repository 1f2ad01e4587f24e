// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"

	"github.com/rtbench/rtplot/results"
)

// A View selects what one chart shows: one value per cell, derived
// from the cell's measurement.
type View struct {
	// Name is a short identifier, used as the chart's file name.
	Name string
	// Title is printed above the chart.
	Title string
	// YLabel labels the y axis.
	YLabel string
	// Value returns the plotted value of a cell.
	Value func(m results.Measurement) float64
	// Derived is set for views computed from several metrics.
	Derived bool
}

// MetricView returns a view of a single measured metric.
func MetricView(name, title, ylabel string, metric results.Metric) View {
	return View{
		Name:   name,
		Title:  title,
		YLabel: ylabel,
		Value:  func(m results.Measurement) float64 { return m[metric] },
	}
}

// SpeedupView returns a view of the CPU/GPU speed-up computed from the
// given CPU, transfer and GPU metrics.
func SpeedupView(name, title, ylabel string, cpu, transfer, gpu results.Metric) View {
	return View{
		Name:   name,
		Title:  title,
		YLabel: ylabel,
		Value: func(m results.Measurement) float64 {
			return Speedup(m[cpu], m[transfer], m[gpu])
		},
		Derived: true,
	}
}

// Speedup returns how many times faster the GPU path is than the CPU
// path, counting the device-to-host transfer as part of the GPU path:
// cpu / (transfer + gpu).
//
// Speedup returns NaN when transfer+gpu is zero, which is the case for
// cells absent from the results file.
func Speedup(cpu, transfer, gpu float64) float64 {
	den := transfer + gpu
	if den == 0 {
		return math.NaN()
	}
	return cpu / den
}

// Views returns the eight standard views in display order.
func Views() []View {
	return []View{
		MetricView("cpu-time", "CPU", "CPU time [µs]", results.CPUTime),
		MetricView("cpu-cycles", "CPU", "CPU cycles per pixel", results.CPUCycles),
		MetricView("gpu-time", "OpenCL GPU", "OpenCL GPU time [µs]", results.GPUTime),
		MetricView("gpu-cycles", "OpenCL GPU", "OpenCL GPU cycles per pixel", results.GPUCycles),
		MetricView("transfer-time", "Memory transfer", "memory transfer time [µs]", results.TransferTime),
		MetricView("transfer-cycles", "Memory transfer", "memory transfer cycles per pixel", results.TransferCycles),
		SpeedupView("speedup-time", "CPU/GPU speed-up", "CPU/GPU time speed-up",
			results.CPUTime, results.TransferTime, results.GPUTime),
		SpeedupView("speedup-cycles", "CPU/GPU speed-up", "CPU/GPU cycles per pixel speed-up",
			results.CPUCycles, results.TransferCycles, results.GPUCycles),
	}
}
