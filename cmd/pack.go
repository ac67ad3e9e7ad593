package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cba/internal/archiver"
	"cba/internal/pipeline"
	"cba/internal/tui"
)

var (
	packType    archiver.Container
	packTimeout time.Duration
	packPlain   bool
)

var _ pflag.Value = (*archiver.Container)(nil)

var packCmd = &cobra.Command{
	Use:   "pack [flags] <path>...",
	Short: "Rename pages and archive every folder of page scans",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive := !packPlain && isatty.IsTerminal(os.Stdout.Fd())

		var logOut io.Writer = os.Stderr
		if interactive {
			logOut = io.Discard
		}
		logger, closeLog, err := newLogger(logOut)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		p := pipeline.New(ctx, pipeline.Config{Logger: logger, Timeout: packTimeout})

		events := make(chan pipeline.Event, 64)
		uiDone := make(chan struct{})
		if interactive {
			program := tea.NewProgram(tui.NewModel(events, stop))
			go func() {
				_, _ = program.Run()
				close(uiDone)
			}()
		} else {
			go func() {
				defer close(uiDone)
				for ev := range events {
					if line := tui.RenderEvent(ev); line != "" {
						fmt.Fprintln(os.Stdout, line)
					}
				}
			}()
		}

		summary, runErr := p.Run(ctx, pipeline.Request{
			Paths: args,
			Type:  packType,
			Emit:  forward(events, uiDone),
		})

		close(events)
		<-uiDone

		rows := []tui.SummaryRow{
			{Label: "Folders found", Value: strconv.Itoa(summary.Folders)},
			{Label: "Archived", Value: strconv.Itoa(summary.Archived)},
			{Label: "Skipped (archive exists)", Value: strconv.Itoa(summary.Skipped)},
			{Label: "Pages packed", Value: strconv.Itoa(summary.Pages)},
			{Label: "Input size", Value: humanize.Bytes(uint64(summary.Bytes))},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

		return runErr
	},
}

// forward sends events to the UI until it has exited. A view that quit early
// must not stall the run on a full channel.
func forward(events chan<- pipeline.Event, uiDone <-chan struct{}) func(pipeline.Event) {
	return func(ev pipeline.Event) {
		select {
		case events <- ev:
		case <-uiDone:
		}
	}
}

func init() {
	packCmd.Flags().VarP(&packType, "type", "t", "container: auto, 7z (cb7) or zip (cbz)")
	packCmd.Flags().DurationVar(&packTimeout, "timeout", 0, "kill 7z when one folder takes longer (0 disables)")
	packCmd.Flags().BoolVar(&packPlain, "plain", false, "print one line per event instead of the progress view")

	rootCmd.AddCommand(packCmd)
}
