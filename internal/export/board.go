package export

import (
	"fmt"

	"github.com/san-kum/splitflap/internal/align"
	"github.com/san-kum/splitflap/internal/charset"
	"github.com/san-kum/splitflap/internal/flap"
	"github.com/san-kum/splitflap/internal/storage"
)

// RecordedCells rebuilds the aligned cells of a stored frame using the
// board settings saved with the recording.
func RecordedCells(meta *storage.RecordingMetadata, fr storage.FrameRecord) ([]flap.Cell, error) {
	set, err := charset.FromString(meta.Charset)
	if err != nil {
		return nil, fmt.Errorf("recording %s: %w", meta.ID, err)
	}
	dir, err := align.ParseDirection(meta.PadDirection)
	if err != nil {
		return nil, fmt.Errorf("recording %s: %w", meta.ID, err)
	}

	prev, curr := align.Pair(fr.Previous, fr.Current, set, meta.MinWidth, dir)
	cells := make([]flap.Cell, len(curr))
	for i := range curr {
		cells[i] = flap.Cell{Prev: prev[i], Curr: curr[i]}
	}
	return cells, nil
}

// MovingSeries returns the number of cells in motion for each frame.
func MovingSeries(frames []storage.FrameRecord) []float64 {
	data := make([]float64, len(frames))
	for i, f := range frames {
		data[i] = float64(f.Moving)
	}
	return data
}
