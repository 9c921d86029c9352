package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetflow/internal/translate"
	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

func newTranslateCommand(configPath *string) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "translate <file>",
		Short: "Print the speaker-labelled transcript translated into another language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			text, err := a.translate(cmd.Context(), args[0], lang)
			if text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Target language code or name, e.g. es or Spanish")
	_ = cmd.MarkFlagRequired("lang")

	return cmd
}

// translate returns the labelled transcript of path in lang. When the model
// fails the original text is returned together with the error.
func (a *app) translate(ctx context.Context, path, lang string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	code, ok := translate.Code(lang)
	if !ok {
		return "", fmt.Errorf("unsupported language %q, supported: %v", lang, translate.Supported)
	}

	report, _, err := a.processor.Analyze(ctx, path)
	if err != nil {
		return "", err
	}
	if code == translate.English {
		return report.Labeled, nil
	}
	if a.translator == nil {
		return report.Labeled, mferrors.New(mferrors.ErrModelUnavailable, "translate", mferrors.ErrNoModel)
	}

	a.logger.Info(ctx, "Translating %s to %s", baseName(path), translate.LanguageName(code))
	return a.translator.PreservingSpeakers(ctx, report.Labeled, code)
}
