package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RecordingMetadata
	Frames []ExportFrame `json:"frames"`
}

type ExportFrame struct {
	Tick      int    `json:"tick"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Previous  string `json:"previous"`
	Current   string `json:"current"`
	Moving    int    `json:"moving"`
}

// ExportJSON writes a recording with all of its frames as indented JSON.
func (s *Store) ExportJSON(w io.Writer, id string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(id)
	if err != nil {
		return err
	}

	data := ExportData{
		RecordingMetadata: *meta,
		Frames:            make([]ExportFrame, len(frames)),
	}
	for i, f := range frames {
		data.Frames[i] = ExportFrame{
			Tick:      f.Tick,
			ElapsedMs: f.Elapsed.Milliseconds(),
			Previous:  f.Previous,
			Current:   f.Current,
			Moving:    f.Moving,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
