package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tracktime",
		Short: "Track lengths, chapters and playback for an mp3 library",
		Long: `tracktime keeps a library of mp3 tracks, shows their lengths as mm:ss or hh:mm:ss,
builds chapter timestamps for mixes and plays local files.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(app.createFormatCommand())
	rootCmd.AddCommand(app.createProbeCommand())
	rootCmd.AddCommand(app.createAddCommand(ctx))
	rootCmd.AddCommand(app.createListCommand())
	rootCmd.AddCommand(app.createDeleteCommand(ctx))
	rootCmd.AddCommand(app.createChaptersCommand(ctx))
	rootCmd.AddCommand(app.createYouTubeCommand(ctx))
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createTUICommand())

	return rootCmd
}
