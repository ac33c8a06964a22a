// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveExport is the root JSON structure of an exported session
type ArchiveExport struct {
	ExportedAt time.Time    `json:"exportedAt"`
	Count      int          `json:"count"`
	Reports    []ReportJSON `json:"reports"`
}

// ReportJSON is one archived message
type ReportJSON struct {
	ID          string          `json:"id"`
	Variant     string          `json:"variant"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Site        string          `json:"site,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Text        string          `json:"text"`
	Snapshot    json.RawMessage `json:"snapshot,omitempty"`
}

// exportJSON writes the reports to a JSON file, gzipped when configured
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	filename := fmt.Sprintf("novedades_%s.json", export.ExportedAt.Format("20060102_150405"))
	if b.cfg.CompressOutput {
		filename += ".gz"
	}
	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	if b.cfg.CompressOutput {
		err = writeGzipJSON(outputPath, export)
	} else {
		err = writeJSON(outputPath, export)
	}
	if err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() ArchiveExport {
	export := ArchiveExport{
		ExportedAt: b.now(),
		Count:      len(b.reports),
		Reports:    make([]ReportJSON, 0, len(b.reports)),
	}
	for _, r := range b.reports {
		export.Reports = append(export.Reports, ReportJSON{
			ID:          r.ID.String(),
			Variant:     r.Variant,
			GeneratedAt: r.GeneratedAt,
			Site:        r.Site,
			Unit:        r.Unit,
			Text:        r.Text,
			Snapshot:    json.RawMessage(r.Snapshot),
		})
	}
	return export
}

func writeJSON(path string, data ArchiveExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func writeGzipJSON(path string, data ArchiveExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
