package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wudi/noticepdf/builder"
	"github.com/wudi/noticepdf/observability"
)

var errTerminalOutput = errors.New("refusing to write PDF to a terminal; use --output or --force")

var renderFlags struct {
	output string
	format string
	watch  bool
	force  bool
}

var renderCmd = &cobra.Command{
	Use:   "render [input]",
	Short: "Render notice text to PDF",
	Long: `Render notice text to PDF.

Input is read from the named file, or from stdin when no file or "-" is given.
The format defaults to the input file extension (.md, .html) and falls back to
plain text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.output, "output", "o", "", "output file (default stdout)")
	f.StringVarP(&renderFlags.format, "format", "f", "", "input format: text, markdown or html")
	f.BoolVarP(&renderFlags.watch, "watch", "w", false, "re-render whenever the input file changes")
	f.BoolVar(&renderFlags.force, "force", false, "write PDF bytes to a terminal")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)
	b, err := newBuilder(cfg.Render, log)
	if err != nil {
		return err
	}

	input := "-"
	if len(args) == 1 {
		input = args[0]
	}
	format, err := resolveFormat(renderFlags.format, input)
	if err != nil {
		return err
	}
	if renderFlags.watch && input == "-" {
		return errors.New("--watch needs an input file")
	}

	job := renderJob{builder: b, input: input, output: renderFlags.output, format: format, log: log}
	if renderFlags.output == "" && !renderFlags.force && isTerminal(cmd.OutOrStdout()) {
		return errTerminalOutput
	}
	if err := job.run(cmd); err != nil {
		return err
	}
	if !renderFlags.watch {
		return nil
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return job.watch(ctx, cmd)
}

// resolveFormat prefers the flag, then the file extension.
func resolveFormat(flag, input string) (builder.Format, error) {
	if flag != "" {
		return builder.ParseFormat(flag)
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case ".md", ".markdown":
		return builder.FormatMarkdown, nil
	case ".html", ".htm":
		return builder.FormatHTML, nil
	}
	return builder.FormatText, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type renderJob struct {
	builder *builder.Builder
	input   string
	output  string
	format  builder.Format
	log     observability.Logger
}

func (j renderJob) read(cmd *cobra.Command) (string, error) {
	if j.input == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(j.input)
	return string(data), err
}

func (j renderJob) run(cmd *cobra.Command) error {
	text, err := j.read(cmd)
	if err != nil {
		return err
	}
	doc, err := j.builder.BuildFormat(text, j.format)
	if err != nil {
		return err
	}
	if j.output == "" {
		_, err := cmd.OutOrStdout().Write(doc.Bytes)
		return err
	}
	if err := writeFileAtomic(j.output, doc.Bytes); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s\n",
		styles.ok.Render("wrote"), j.output,
		styles.muted.Render(fmt.Sprintf("(%d pages, %d bytes)", doc.Pages, len(doc.Bytes))))
	return nil
}

// watch re-runs the job on every write to the input until ctx is done.
// Editors often replace files by rename, so the parent directory is watched.
func (j renderJob) watch(ctx context.Context, cmd *cobra.Command) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	abs, err := filepath.Abs(j.input)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	j.log.Info("watching", observability.String("file", abs))

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == abs && ev.Has(fsnotify.Write|fsnotify.Create) {
				debounce = time.After(100 * time.Millisecond)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			j.log.Warn("watch error", observability.Error("error", err))
		case <-debounce:
			debounce = nil
			if err := j.run(cmd); err != nil {
				j.log.Error("render failed", observability.Error("error", err))
			}
		}
	}
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".noticepdf-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
