package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/app"
)

var (
	configPath  string
	prefsPath   string
	pollEvery   time.Duration
	logLines    int
	logMinLevel string
)

var rootCmd = &cobra.Command{
	Use:           "marquee",
	Short:         "Terminal client for the movie site",
	Long:          "Marquee browses the movie site from a terminal and follows your system's night mode until you pick one yourself.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), options())
	},
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the TUI (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), options())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the effective theme and where it comes from",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := app.Status(options())
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip night mode and stop following the system theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := app.Toggle(options())
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the tail of the Marquee log",
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := app.Logs(options(), logLines, logMinLevel)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "override config path (optional)")
	flags.StringVar(&prefsPath, "prefs", "", "override preferences file path (optional)")
	flags.DurationVar(&pollEvery, "poll", 0, "system theme poll interval (optional, defaults to 2s)")

	logsCmd.Flags().IntVarP(&logLines, "lines", "n", 50, "number of lines to show")
	logsCmd.Flags().StringVar(&logMinLevel, "level", "debug", "minimum level to show")

	rootCmd.AddCommand(uiCmd, statusCmd, toggleCmd, logsCmd)
}

func options() app.Options {
	return app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		PollEvery:  pollEvery,
	}
}

func printReport(w io.Writer, r app.Report) {
	theme := "day"
	if r.NightMode {
		theme = "night"
	}
	source := "saved preference"
	switch {
	case r.UserPreferred:
		source = "user choice"
	case r.SystemAvailable:
		source = "system"
	}

	fmt.Fprintf(w, "theme:    %s\n", theme)
	fmt.Fprintf(w, "source:   %s\n", source)
	if r.SystemAvailable {
		system := "light"
		if r.SystemDark {
			system = "dark"
		}
		fmt.Fprintf(w, "system:   %s (%s)\n", system, r.Detector)
	} else {
		fmt.Fprintln(w, "system:   unavailable")
	}
	fmt.Fprintf(w, "prefs:    %s", r.PrefsBackend)
	if r.PrefsBackend == "file" && r.PrefsPath != "" {
		fmt.Fprintf(w, " (%s)", r.PrefsPath)
	}
	fmt.Fprintln(w)
}
