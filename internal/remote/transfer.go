package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"motoclub-theme/internal/metrics"
	"motoclub-theme/internal/palette"
	"motoclub-theme/internal/ui"
)

// ExportVersion is written into every exported collection.
const ExportVersion = "1.0.0"

var (
	// ErrNoFile is returned when an import carries no file.
	ErrNoFile = errors.New("nessun file selezionato")
	// ErrUnsupportedFile is returned for uploads that are not .json files.
	ErrUnsupportedFile = errors.New("il file deve avere estensione .json")
)

// exportFile is the downloadable collection, fields in output order.
type exportFile struct {
	Version  string             `json:"version"`
	Profiles palette.Collection `json:"profiles"`
	Active   string             `json:"active"`
	Exported string             `json:"exported"`
}

// ImportResult describes a committed import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Keys     []string `json:"keys"`
	Active   string   `json:"active"`
	Switched bool     `json:"switched"`
}

// ExportToJSON writes the page's whole collection and selected key to w as
// two-space indented JSON and returns the suggested download filename.
func (s *Session) ExportToJSON(w io.Writer) (string, error) {
	now := s.now().UTC()
	out := exportFile{
		Version:  ExportVersion,
		Profiles: cloneCollection(s.profiles),
		Active:   s.current,
		Exported: now.Format("2006-01-02T15:04:05.000Z07:00"),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode palettes: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("write palettes: %w", err)
	}

	metrics.Exports.Inc()
	ui.LogStatus("success", "Site palettes exported")
	return fmt.Sprintf("motoclub-colors-%d.json", now.UnixMilli()), nil
}

// ImportFromJSON merges the palettes of an uploaded collection into the
// page's one. Keys already present are overwritten, others are kept and
// new keys are appended. The import's active palette is selected only when
// it exists after the merge. The outcome is reported to n; on any error
// nothing is changed. The shared scheme is never touched.
func (s *Session) ImportFromJSON(r io.Reader, filename string, n Notifier) (ImportResult, error) {
	if n == nil {
		n = LogNotifier{}
	}

	res, err := s.importFile(r, filename)
	if err != nil {
		metrics.Imports.WithLabelValues("error").Inc()
		ui.LogStatus("error", "Palette import failed: "+err.Error())
		n.Notify(LevelError, "Errore: "+err.Error())
		return ImportResult{}, err
	}

	metrics.Imports.WithLabelValues("success").Inc()
	n.Notify(LevelSuccess, fmt.Sprintf("Importati %d profili!", res.Imported))
	return res, nil
}

func (s *Session) importFile(r io.Reader, filename string) (ImportResult, error) {
	if r == nil || filename == "" {
		return ImportResult{}, ErrNoFile
	}
	if !strings.EqualFold(filepath.Ext(filename), ".json") {
		return ImportResult{}, ErrUnsupportedFile
	}

	data, err := io.ReadAll(io.LimitReader(r, maxFileBytes+1))
	if err != nil {
		return ImportResult{}, fmt.Errorf("lettura file: %w", err)
	}
	if len(data) > maxFileBytes {
		return ImportResult{}, fmt.Errorf("%w: file troppo grande", ErrInvalidFormat)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return ImportResult{}, fmt.Errorf("JSON non valido: %w", err)
	}
	incoming, err := decodeProfiles(f.Profiles)
	if err != nil {
		return ImportResult{}, err
	}

	s.merge(incoming)

	res := ImportResult{Imported: incoming.Len(), Keys: incoming.Keys(), Active: s.current}
	if f.Active != "" && s.profiles.Has(f.Active) {
		s.current = f.Active
		res.Active = f.Active
		res.Switched = true
	}
	return res, nil
}
