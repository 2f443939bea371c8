package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rs/xid"
	"github.com/san-kum/splitflap/internal/flap"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RecordingMetadata describes one recorded transition.
type RecordingMetadata struct {
	ID           string             `json:"id"`
	Board        string             `json:"board"`
	Timestamp    time.Time          `json:"timestamp"`
	Charset      string             `json:"charset"`
	MinWidth     int                `json:"min_width"`
	PadDirection string             `json:"pad_direction"`
	StepMs       int64              `json:"step_ms"`
	From         string             `json:"from"`
	Target       string             `json:"target"`
	Ticks        int                `json:"ticks"`
	Converged    bool               `json:"converged"`
	Metrics      map[string]float64 `json:"metrics"`
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Tick     int
	Elapsed  time.Duration
	Previous string
	Current  string
	Moving   int
}

// Save writes the frames and metadata of a finished run and returns its ID.
// Frames go first so a recording only appears in List once it is complete;
// on any error the recording directory is removed.
func (s *Store) Save(board string, cfg flap.Config, from, target string, result *flap.Result) (string, error) {
	id := xid.New().String()
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := RecordingMetadata{
		ID:           id,
		Board:        board,
		Timestamp:    time.Now(),
		Charset:      cfg.Charset.String(),
		MinWidth:     cfg.MinWidth,
		PadDirection: cfg.PadDirection.String(),
		StepMs:       cfg.Step.Milliseconds(),
		From:         from,
		Target:       target,
		Ticks:        result.Ticks,
		Converged:    result.Converged,
		Metrics:      result.Metrics,
	}

	if err := writeFrames(filepath.Join(dir, framesFile), result); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("save %s: %w", id, err)
	}
	if err := writeMetadata(filepath.Join(dir, metadataFile), meta); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("save %s: %w", id, err)
	}
	return id, nil
}

func writeMetadata(path string, meta RecordingMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFrames(path string, result *flap.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"tick", "elapsed_ms", "previous", "current", "moving"}); err != nil {
		f.Close()
		return err
	}
	for i, fr := range result.Frames {
		var elapsed time.Duration
		if i < len(result.Times) {
			elapsed = result.Times[i]
		}
		row := []string{
			strconv.Itoa(fr.Tick),
			strconv.FormatInt(elapsed.Milliseconds(), 10),
			fr.Previous,
			fr.Current,
			strconv.Itoa(fr.Moving),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns all recordings, newest first.
func (s *Store) List() ([]RecordingMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RecordingMetadata{}, nil
		}
		return nil, err
	}

	recs := make([]RecordingMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		recs = append(recs, *meta)
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Timestamp.After(recs[j].Timestamp)
	})
	return recs, nil
}

func (s *Store) Load(id string) (*RecordingMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RecordingMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	return &meta, nil
}

func (s *Store) LoadFrames(id string) ([]FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []FrameRecord{}, nil
	}

	frames := make([]FrameRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		tick, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("bad tick %q: %w", rec[0], err)
		}
		ms, err := strconv.ParseInt(rec[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad elapsed %q: %w", rec[1], err)
		}
		moving, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("bad moving %q: %w", rec[4], err)
		}
		frames = append(frames, FrameRecord{
			Tick:     tick,
			Elapsed:  time.Duration(ms) * time.Millisecond,
			Previous: rec[2],
			Current:  rec[3],
			Moving:   moving,
		})
	}
	return frames, nil
}
