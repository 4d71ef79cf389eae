// Package snapshot persists datasets as the two parquet files read by the
// dashboard.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/kilianp07/evdash/config"
	"github.com/kilianp07/evdash/core/model"
)

// ErrEmptyPath is returned when a snapshot path is empty.
var ErrEmptyPath = errors.New("snapshot path is empty")

const parallelism = 4

// Codec maps a configured compression name to its parquet codec.
func Codec(name string) (parquet.CompressionCodec, error) {
	switch strings.ToLower(name) {
	case "", "snappy":
		return parquet.CompressionCodec_SNAPPY, nil
	case "gzip":
		return parquet.CompressionCodec_GZIP, nil
	case "zstd":
		return parquet.CompressionCodec_ZSTD, nil
	case "none":
		return parquet.CompressionCodec_UNCOMPRESSED, nil
	default:
		return 0, fmt.Errorf("unknown compression %s", name)
	}
}

// WriteStations writes stations to path with the given codec.
func WriteStations(path string, codec parquet.CompressionCodec, stations []model.Station) error {
	return writeAtomic(path, codec, stationRows(stations))
}

// WriteSessions writes sessions to path with the given codec.
func WriteSessions(path string, codec parquet.CompressionCodec, sessions []model.Session) error {
	return writeAtomic(path, codec, sessionRows(sessions))
}

// ReadStations loads every station stored at path.
func ReadStations(path string) ([]model.Station, error) {
	rows, err := readAll[stationRow](path)
	if err != nil {
		return nil, err
	}
	out := make([]model.Station, len(rows))
	for i, r := range rows {
		out[i] = r.station()
	}
	return out, nil
}

// ReadSessions loads every session stored at path.
func ReadSessions(path string) ([]model.Session, error) {
	rows, err := readAll[sessionRow](path)
	if err != nil {
		return nil, err
	}
	out := make([]model.Session, len(rows))
	for i, r := range rows {
		out[i] = r.session()
	}
	return out, nil
}

// Load reads both snapshot files described by cfg.
func Load(cfg config.OutputConfig) (model.Dataset, error) {
	stations, err := ReadStations(cfg.StationsPath())
	if err != nil {
		return model.Dataset{}, fmt.Errorf("stations: %w", err)
	}
	sessions, err := ReadSessions(cfg.SessionsPath())
	if err != nil {
		return model.Dataset{}, fmt.Errorf("sessions: %w", err)
	}
	return model.Dataset{Stations: stations, Sessions: sessions}, nil
}

// writeAtomic writes rows to path+".tmp" and renames it into place. The
// temporary file is removed on any failure.
func writeAtomic[T any](path string, codec parquet.CompressionCodec, rows []T) error {
	tmp, err := writeTemp(path, codec, rows)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// writeTemp writes rows to path+".tmp" and returns the temporary path. The
// file is removed when writing fails.
func writeTemp[T any](path string, codec parquet.CompressionCodec, rows []T) (tmp string, err error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	tmp = path + ".tmp"
	fw, err := local.NewLocalFileWriter(tmp)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", tmp, err)
	}
	closed := false
	defer func() {
		if !closed {
			_ = fw.Close()
		}
		if err != nil {
			_ = os.Remove(tmp)
			tmp = ""
		}
	}()

	pw, err := writer.NewParquetWriter(fw, new(T), parallelism)
	if err != nil {
		return tmp, fmt.Errorf("parquet writer: %w", err)
	}
	pw.CompressionType = codec
	for i := range rows {
		if err = pw.Write(rows[i]); err != nil {
			return tmp, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	if err = pw.WriteStop(); err != nil {
		return tmp, fmt.Errorf("flush %s: %w", tmp, err)
	}
	closed = true
	if err = fw.Close(); err != nil {
		return tmp, fmt.Errorf("close %s: %w", tmp, err)
	}
	return tmp, nil
}

// replacePair renames both temporary files into place. If the second rename
// fails the first target is rolled back to its previous content, so the two
// files on disk always come from the same run.
func replacePair(firstTmp, first, secondTmp, second string) error {
	backup := first + ".prev"
	hadPrev := false
	if _, err := os.Stat(first); err == nil {
		if err := os.Rename(first, backup); err != nil {
			return fmt.Errorf("backup %s: %w", first, err)
		}
		hadPrev = true
	}
	restore := func() {
		if hadPrev {
			_ = os.Rename(backup, first)
		}
	}
	if err := os.Rename(firstTmp, first); err != nil {
		restore()
		return fmt.Errorf("rename %s: %w", first, err)
	}
	if err := os.Rename(secondTmp, second); err != nil {
		_ = os.Remove(first)
		restore()
		return fmt.Errorf("rename %s: %w", second, err)
	}
	if hadPrev {
		_ = os.Remove(backup)
	}
	return nil
}

func readAll[T any](path string) ([]T, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = fr.Close() }()

	pr, err := reader.NewParquetReader(fr, new(T), parallelism)
	if err != nil {
		return nil, fmt.Errorf("parquet reader %s: %w", path, err)
	}
	defer pr.ReadStop()

	rows := make([]T, int(pr.GetNumRows()))
	if len(rows) == 0 {
		return rows, nil
	}
	if err := pr.Read(&rows); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}
