package processor

import (
	"context"

	"github.com/nguyentantai21042004/meetflow/internal/insight"
)

// Processor runs one meeting file through the pipeline.
type Processor interface {
	// Process analyzes path, writes the configured exports and moves the
	// source to the archived folder.
	Process(ctx context.Context, path string) error

	// Analyze returns the report for path, from the archive when the file
	// was seen before. cached reports whether analysis was skipped.
	Analyze(ctx context.Context, path string) (report *insight.Report, cached bool, err error)
}
