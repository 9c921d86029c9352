package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/meetflow/internal/insight"
)

// Export formats.
const (
	FormatMarkdown = "md"
	FormatJSON     = "json"
	FormatDOCX     = "docx"
	FormatEmail    = "email"
	FormatAgenda   = "agenda"
	FormatSRT      = "srt"
)

// Formats lists every supported format.
var Formats = []string{FormatMarkdown, FormatJSON, FormatDOCX, FormatEmail, FormatAgenda, FormatSRT}

// FileName returns the file written for format, e.g. "standup_email.txt".
func FileName(base, format string) string {
	switch format {
	case FormatEmail:
		return base + "_email.txt"
	case FormatAgenda:
		return base + "_agenda.md"
	default:
		return base + "." + format
	}
}

// WriteAll writes the report to dir in every requested format, naming files
// after base. It returns the written paths in format order.
func WriteAll(r *insight.Report, dir, base string, formats []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	written := make([]string, 0, len(formats))
	for _, format := range formats {
		path := filepath.Join(dir, FileName(base, format))
		if err := write(r, format, path); err != nil {
			return written, fmt.Errorf("export %s: %w", format, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func write(r *insight.Report, format, path string) error {
	var data []byte
	switch format {
	case FormatMarkdown:
		data = []byte(Markdown(r))
	case FormatJSON:
		var err error
		if data, err = JSON(r); err != nil {
			return err
		}
	case FormatDOCX:
		return WriteDOCX(r, path)
	case FormatEmail:
		data = []byte(Email(r))
	case FormatAgenda:
		data = []byte(Agenda(r))
	case FormatSRT:
		data = []byte(SRT(r.Segments))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return os.WriteFile(path, data, 0o644)
}
