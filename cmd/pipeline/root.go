package main

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yaml"

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "meetflow",
		Short: "Turn meeting recordings and transcripts into reports",
		Long: `meetflow transcribes meetings, attributes speakers and extracts risks,
topics, action items and an agenda for the next meeting.

Examples:
  meetflow watch                         # process files dropped into paths.input
  meetflow analyze standup.vtt           # analyze one file and write reports
  meetflow analyze call.mp4 -f md -f docx
  meetflow translate standup.vtt --lang es
  meetflow history --limit 5`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to the YAML config file")

	cmd.AddCommand(newWatchCommand(&configPath))
	cmd.AddCommand(newAnalyzeCommand(&configPath))
	cmd.AddCommand(newTranslateCommand(&configPath))
	cmd.AddCommand(newHistoryCommand(&configPath))

	return cmd
}
