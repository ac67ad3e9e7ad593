package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	rootVerbose bool
	rootLogFile string
)

var rootCmd = &cobra.Command{
	Use:   "cba",
	Short: "cba 📚 - pack folders of page scans into comic book archives",
	Long: "cba 📚 renames numbered page scans into canonical order and packs each folder " +
		"into a .cb7 or .cbz archive next to it using 7z.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "log renames and archiver output")
	rootCmd.PersistentFlags().StringVar(&rootLogFile, "log-file", "", "append logs to this file")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

// newLogger builds the run logger. Logs go to --log-file when set, otherwise
// to fallback. The returned close func must be called when done.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}
	if rootLogFile != "" {
		f, err := os.OpenFile(rootLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	level := log.InfoLevel
	if rootVerbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "cba",
	})
	return logger, closeFn, nil
}
