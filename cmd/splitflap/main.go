package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir     string
	configFile  string
	preset      string
	verbose     bool
	logFile     string
	metricsAddr string
	// Board parameters
	charsetName string
	symbols     string
	minWidth    int
	padDir      string
	stepMs      int
	fromValue   string
	// Presentation
	theme     string
	frameRate int
	board     string
	// Recording
	record       bool
	exportFormat string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the splitflap commands. The root runs the interactive
// board when no subcommand is given.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "splitflap [value]",
		Short:        "split-flap display lab",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         showBoard,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".splitflap", "recordings directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "board config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset board")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to file")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	addBoardFlags(rootCmd)

	showCmd := &cobra.Command{
		Use:   "show [value]",
		Short: "interactive board",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showBoard,
	}
	addBoardFlags(showCmd)

	rollCmd := &cobra.Command{
		Use:   "roll <value>",
		Short: "roll the board to a value in real time",
		Args:  cobra.ExactArgs(1),
		RunE:  rollBoard,
	}
	addBoardFlags(rollCmd)
	rollCmd.Flags().BoolVar(&record, "record", false, "save the transition")

	simulateCmd := &cobra.Command{
		Use:   "simulate <value>",
		Short: "compute every frame of a transition without waiting",
		Args:  cobra.ExactArgs(1),
		RunE:  simulateBoard,
	}
	addBoardFlags(simulateCmd)
	simulateCmd.Flags().BoolVar(&record, "record", false, "save the transition")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recordings",
		RunE:  listRecordings,
	}

	plotCmd := &cobra.Command{
		Use:   "plot <id>",
		Short: "plot cells in motion per tick",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRecording,
	}

	exportCmd := &cobra.Command{
		Use:   "export <id>",
		Short: "export a recording as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRecording,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json|board|chart)")
	exportCmd.Flags().StringVar(&theme, "theme", "classic", "color theme for board output")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list board presets",
		RunE:  listPresets,
	}

	charsetsCmd := &cobra.Command{
		Use:   "charsets",
		Short: "list character sets",
		RunE:  listCharsets,
	}

	rootCmd.AddCommand(showCmd, rollCmd, simulateCmd, listCmd, plotCmd, exportCmd, presetsCmd, charsetsCmd)
	return rootCmd
}

func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&charsetName, "charset", "numeric", "character set preset")
	cmd.Flags().StringVar(&symbols, "symbols", "", "custom character set, first symbol is the blank")
	cmd.Flags().IntVar(&minWidth, "width", 5, "minimum number of cells")
	cmd.Flags().StringVar(&padDir, "pad", "left", "pad direction (left|right)")
	cmd.Flags().IntVar(&stepMs, "step", 200, "tick interval in milliseconds")
	cmd.Flags().StringVar(&fromValue, "from", "", "value shown before rolling")
	cmd.Flags().StringVar(&theme, "theme", "classic", "color theme")
	cmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	cmd.Flags().StringVar(&board, "board", "splitflap", "board name for logs and metrics")
}
