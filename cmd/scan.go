package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"cba/internal/archiver"
	"cba/internal/inspect"
	"cba/internal/pipeline"
	"cba/internal/tui"
)

var scanType archiver.Container

var scanCmd = &cobra.Command{
	Use:   "scan <path>...",
	Short: "Preview what pack would do without modifying anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}
		defer closeLog()

		plans := pipeline.Plan(args, scanType)
		logger.Debug("scan planned", "folders", len(plans))
		if len(plans) == 0 {
			fmt.Fprintln(os.Stdout, scanDimStyle.Render("no folders with pages found"))
			return nil
		}

		for i, plan := range plans {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "%s\n", scanFileStyle.Render(plan.Path))
			if plan.Err != nil {
				scanLine(scanErrorStyle, plan.Err.Error())
				continue
			}

			scanField("pages", fmt.Sprintf("%d (%s)", len(plan.Pages), humanize.Bytes(uint64(plan.Bytes))))
			scanField("archive", fmt.Sprintf("%s [%s]", filepath.Base(plan.Archive), plan.Container))
			if plan.ArchiveExists {
				scanLine(scanWarnStyle, "archive exists, folder would be skipped")
				continue
			}
			scanField("renames", fmt.Sprintf("%d", plan.Renames))
			if plan.Conflict != "" {
				scanLine(scanErrorStyle, filepath.Base(plan.Conflict)+" already exists, pack would abort here")
			}

			report := inspect.Pages(plan.Pages)
			if report.Empty() {
				continue
			}
			for _, page := range report.Mislabelled {
				scanLine(scanWarnStyle, fmt.Sprintf("%s is %s, not jpeg", filepath.Base(page.Path), page.Kind))
			}
			for _, page := range report.Identifying {
				scanLine(scanWarnStyle, fmt.Sprintf("%s carries exif (%s)", filepath.Base(page.Path), page.Metadata.Describe()))
			}
			for _, page := range report.Failed {
				logger.Warn("inspect failed", "page", page.Path, "err", page.Err)
				scanLine(scanErrorStyle, fmt.Sprintf("%s: %v", filepath.Base(page.Path), page.Err))
			}
		}
		return nil
	},
}

func scanField(label, value string) {
	fmt.Fprintf(os.Stdout, "  %s %s\n",
		scanCategoryStyle.Render(label+":"),
		scanValueStyle.Render(value),
	)
}

func scanLine(style lipgloss.Style, text string) {
	fmt.Fprintf(os.Stdout, "  %s %s\n", scanBulletStyle.Render("-"), style.Render(text))
}

var (
	scanFileStyle     = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	scanCategoryStyle = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	scanValueStyle    = lipgloss.NewStyle().Foreground(tui.ColorInk)
	scanDimStyle      = lipgloss.NewStyle().Foreground(tui.ColorDim)
	scanBulletStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
	scanWarnStyle     = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	scanErrorStyle    = lipgloss.NewStyle().Foreground(tui.ColorError)
)

func init() {
	scanCmd.Flags().VarP(&scanType, "type", "t", "container: auto, 7z (cb7) or zip (cbz)")

	rootCmd.AddCommand(scanCmd)
}
