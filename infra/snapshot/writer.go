package snapshot

import (
	"fmt"
	"os"

	"github.com/kilianp07/evdash/config"
	"github.com/kilianp07/evdash/core/model"
	"github.com/kilianp07/evdash/infra/logger"
)

// Writer saves datasets to the locations described by an OutputConfig.
type Writer struct {
	cfg config.OutputConfig
	log logger.Logger
}

// NewWriter creates a Writer for cfg.
func NewWriter(cfg config.OutputConfig) *Writer {
	cfg.SetDefaults()
	return &Writer{cfg: cfg, log: logger.New("snapshot")}
}

// Save writes both files to temporary paths first and only then renames
// them into place. On failure neither target changes.
func (w *Writer) Save(ds model.Dataset) (stationsPath, sessionsPath string, err error) {
	codec, err := Codec(w.cfg.Compression)
	if err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(w.cfg.Dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}
	stationsPath = w.cfg.StationsPath()
	sessionsPath = w.cfg.SessionsPath()

	stationsTmp, err := writeTemp(stationsPath, codec, stationRows(ds.Stations))
	if err != nil {
		return "", "", fmt.Errorf("stations: %w", err)
	}
	sessionsTmp, err := writeTemp(sessionsPath, codec, sessionRows(ds.Sessions))
	if err != nil {
		_ = os.Remove(stationsTmp)
		return "", "", fmt.Errorf("sessions: %w", err)
	}
	if err := replacePair(stationsTmp, stationsPath, sessionsTmp, sessionsPath); err != nil {
		_ = os.Remove(stationsTmp)
		_ = os.Remove(sessionsTmp)
		return "", "", err
	}
	w.log.Infow("snapshot written", map[string]any{
		"stations_path": stationsPath,
		"sessions_path": sessionsPath,
		"stations":      len(ds.Stations),
		"sessions":      len(ds.Sessions),
		"compression":   w.cfg.Compression,
	})
	return stationsPath, sessionsPath, nil
}
