// SPDX-License-Identifier: Apache-2.0

// Package export renders the resolved visible canvas into shareable
// artifacts. It consumes the ordered, filtered draw sequence and knows
// nothing about the log it came from.
package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/domain"
)

// Canvas pixels to PDF millimeters.
const pdfScale = 4.0

type point struct {
	x, y float64
}

type polyline struct {
	id     string
	points []point
}

// PDF writes the visible draw sequence to an A4 landscape PDF, one
// polyline per stroke. The input must already be ordered and filtered;
// compensating events are not expected here and are skipped if present.
func PDF(path string, visible []domain.Event) error {
	strokes := collect(visible)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)

	for _, st := range strokes {
		for i := 1; i < len(st.points); i++ {
			pdf.Line(
				st.points[i-1].x/pdfScale, st.points[i-1].y/pdfScale,
				st.points[i].x/pdfScale, st.points[i].y/pdfScale,
			)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

// collect groups the sequence into per-stroke polylines, keeping
// strokes in first-appearance order and points in sequence order.
func collect(visible []domain.Event) []*polyline {
	byID := make(map[string]*polyline)
	ordered := make([]*polyline, 0, 8)

	appendPoint := func(strokeID string, x, y float64) {
		st, ok := byID[strokeID]
		if !ok {
			st = &polyline{id: strokeID}
			byID[strokeID] = st
			ordered = append(ordered, st)
		}
		st.points = append(st.points, point{x: x, y: y})
	}

	for _, ev := range visible {
		switch a := ev.Action.(type) {
		case domain.StrokeStart:
			appendPoint(a.StrokeID, a.X, a.Y)
		case domain.StrokeMove:
			appendPoint(a.StrokeID, a.X, a.Y)
		case domain.StrokeEnd:
			// Carries no position.
		default:
			// Compensating events never reach a renderer.
		}
	}

	return ordered
}
