package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetflow/internal/export"
	"github.com/nguyentantai21042004/meetflow/internal/logger"
	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

func newAnalyzeCommand(configPath *string) *cobra.Command {
	var (
		formats []string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze one recording or transcript and write its reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			paths, err := a.analyze(cmd.Context(), args[0], formats, outDir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Output formats: md, json, docx, email, agenda, srt (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default paths.output)")

	return cmd
}

// analyze runs the pipeline on path without archiving the source and returns
// the files written.
func (a *app) analyze(ctx context.Context, path string, formats []string, outDir string) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(formats) == 0 {
		formats = a.cfg.Export.Formats
		if a.cfg.Export.Captions {
			formats = append(append([]string{}, formats...), export.FormatSRT)
		}
	}
	if outDir == "" {
		outDir = a.cfg.Paths.Output
	}

	base := baseName(path)
	ctx = logger.WithMeeting(ctx, base)

	report, cached, err := a.processor.Analyze(ctx, path)
	if err != nil {
		pe := mferrors.ClassifyError(err, "analyze")
		a.logger.Error(ctx, "Analysis failed (%s): %v", pe.Code, err)
		a.logger.Info(ctx, "Suggested action: %s", mferrors.GetSuggestedAction(pe.Code))
		return nil, err
	}
	if cached {
		a.logger.Info(ctx, "Report loaded from archive")
	}
	for _, w := range report.Warnings {
		a.logger.Warn(ctx, "Degraded: %s", w)
	}

	return export.WriteAll(report, outDir, base, formats)
}

func baseName(path string) string {
	name := filepath.Base(path)
	return name[:len(name)-len(filepath.Ext(name))]
}
