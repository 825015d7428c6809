package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"saxwasm/internal/capture"
	"saxwasm/internal/config"
	"saxwasm/internal/diag"
	"saxwasm/internal/diagfmt"
	"saxwasm/internal/driver"
	"saxwasm/internal/logging"
	"saxwasm/internal/trace"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file|directory|->...",
	Short: "Tokenize markup files and print the event stream",
	Long: `Tokenize feeds each document to the tokenizer in chunks and prints the
events it produces. Directories are walked for markup files; "-" reads stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTokenize,
}

var errDocumentsFailed = errors.New("diagnostics at or above --fail-on severity")

func init() {
	f := tokenizeCmd.Flags()
	f.String("events", "all", "comma-separated event kinds to report (all, none, text, open_tag, ...)")
	f.Int("chunk-size", config.DefaultChunkSize, "bytes fed to the tokenizer per write")
	f.Int("input-size", 0, "initial input window in bytes (0=default)")
	f.Bool("whitespace-text", false, "report text events that are only whitespace")
	f.String("encoding", "auto", "input encoding (auto|utf-8|any WHATWG label)")
	f.Int("jobs", 0, "max parallel documents (0=auto)")
	f.String("format", "pretty", "output format (pretty|json|msgpack)")
	ui := uiModeAuto
	f.Var(&ui, "ui", "progress view for multiple files (auto|on|off)")
	f.StringP("output", "o", "", "msgpack output file, or directory for several documents")
	f.StringSlice("ext", driver.DefaultExtensions, "file extensions picked up in directories")
	f.Int("width", 60, "truncate long values in pretty output (0=no limit)")
	f.Bool("context", true, "show the source line under each diagnostic")
	f.String("fail-on", "error", "exit non-zero when a diagnostic reaches this severity (info|warning|error)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := mergeFlags(cmd, state.cfg)
	if err != nil {
		return err
	}
	set, err := cfg.EventSet()
	if err != nil {
		return err
	}
	if err := driver.CheckEncoding(cfg.Encoding); err != nil {
		return err
	}
	mode := flagUIMode(cmd.Flags())
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	failOnFlag, _ := cmd.Flags().GetString("fail-on")
	failOn, err := diag.ParseSeverity(failOnFlag)
	if err != nil {
		return err
	}
	exts, _ := cmd.Flags().GetStringSlice("ext")
	output, _ := cmd.Flags().GetString("output")

	opts := driver.Options{
		Events:         set,
		ChunkSize:      cfg.ChunkSize,
		InputSize:      cfg.InputSize,
		WhitespaceText: cfg.WhitespaceText,
		MaxDiagnostics: cfg.MaxDiagnostics,
		Encoding:       cfg.Encoding,
		Timer:          state.timer,
		Logger:         logging.Default(),
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "tokenize_cmd", "")
	defer span.End("")

	results, err := collectResults(ctx, args, exts, opts, cfg.Jobs, mode, quiet)
	if err != nil {
		return err
	}
	logging.Default().Info("tokenized",
		logging.FieldFiles, len(results),
		logging.FieldEvents, cfg.Events,
		logging.FieldJobs, cfg.Jobs)

	if err := renderResults(cmd, results, cfg, output); err != nil {
		return err
	}
	for _, r := range results {
		if r.Bag.HasAtLeast(failOn) {
			return errDocumentsFailed
		}
	}
	return nil
}

// collectResults expands args into documents and tokenizes them. Stdin is
// handled inline; files and directories go through the parallel driver.
func collectResults(ctx context.Context, args, exts []string, opts driver.Options, jobs int, mode uiMode, quiet bool) ([]*driver.Result, error) {
	var files []string
	var stdin *driver.Result
	for _, arg := range args {
		if arg == "-" {
			if stdin != nil {
				return nil, fmt.Errorf("stdin given more than once")
			}
			res, err := driver.TokenizeReader(ctx, "<stdin>", os.Stdin, opts)
			if err != nil {
				return nil, err
			}
			stdin = res
			continue
		}
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			found, err := driver.ListFiles(arg, exts)
			if err != nil {
				return nil, fmt.Errorf("scan %s: %w", arg, err)
			}
			if len(found) == 0 {
				logging.Default().Warn("no markup files found", logging.FieldPath, arg)
			}
			files = append(files, found...)
			continue
		}
		// отсутствующий файл станет диагностикой IOLoadFileError
		files = append(files, arg)
	}

	var results []*driver.Result
	if stdin != nil {
		results = append(results, stdin)
	}
	if len(files) == 0 {
		return results, nil
	}
	var rest []*driver.Result
	var err error
	if shouldUseTUI(mode, len(files), quiet) {
		rest, err = runTokenizeWithUI(ctx, "tokenizing", files, opts, jobs)
	} else {
		rest, err = driver.TokenizeFiles(ctx, files, opts, jobs)
	}
	if err != nil {
		return nil, err
	}
	return append(results, rest...), nil
}

func renderResults(cmd *cobra.Command, results []*driver.Result, cfg config.Config, output string) error {
	out := cmd.OutOrStdout()
	width, _ := cmd.Flags().GetInt("width")
	withContext, _ := cmd.Flags().GetBool("context")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	if cfg.Format == "msgpack" {
		if err := writeCaptures(out, results, output); err != nil {
			return err
		}
		return printDiagnostics(cmd, results, withContext, cfg.Encoding)
	}

	for i, r := range results {
		events, err := diagfmt.FromCapture(r.Capture)
		if err != nil {
			return fmt.Errorf("%s: %w", r.Path, err)
		}
		switch cfg.Format {
		case "json":
			if err := diagfmt.FormatEventsJSON(out, r.Path, events); err != nil {
				return err
			}
		default:
			if len(results) > 1 && !quiet {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "==> %s <==\n", r.Path)
			}
			opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stdout), Width: width}
			if err := diagfmt.FormatEventsPretty(out, events, opts); err != nil {
				return err
			}
		}
	}
	if cfg.Format == "json" {
		return printDiagnosticsJSON(cmd, results)
	}
	return printDiagnostics(cmd, results, withContext, cfg.Encoding)
}

// writeCaptures saves one capture per document. A single document with no
// --output goes to stdout unless stdout is a terminal.
func writeCaptures(out io.Writer, results []*driver.Result, output string) error {
	if output == "" {
		if len(results) != 1 {
			return fmt.Errorf("--format msgpack with %d documents needs --output <dir>", len(results))
		}
		if isTerminal(os.Stdout) {
			return fmt.Errorf("refusing to write msgpack to a terminal; use --output")
		}
		return capture.Write(out, results[0].Capture)
	}
	if len(results) == 1 {
		if info, err := os.Stat(output); err != nil || !info.IsDir() {
			return capture.Save(output, results[0].Capture)
		}
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		return err
	}
	for _, r := range results {
		path := filepath.Join(output, captureName(r.Path))
		if err := capture.Save(path, r.Capture); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		logging.Default().Debug("capture saved", logging.FieldOutput, path)
	}
	return nil
}

func captureName(path string) string {
	base := filepath.Base(path)
	base = strings.Trim(base, "<>")
	return base + ".msgpack"
}

func printDiagnostics(cmd *cobra.Command, results []*driver.Result, withContext bool, encoding string) error {
	errOut := cmd.ErrOrStderr()
	opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: withContext}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	for _, r := range results {
		if r.Bag.Len() == 0 {
			continue
		}
		r.Bag.Sort()
		if quiet {
			// одна строка на диагностику, без контекста
			fmt.Fprintln(errOut, diag.FormatShort(r.Path, r.Bag.Items()))
			continue
		}
		var src []byte
		if withContext && sourceIsUTF8(encoding) && r.Path != "<stdin>" {
			// #nosec G304 -- path was just tokenized from user input
			src, _ = os.ReadFile(r.Path)
		}
		if err := diagfmt.Pretty(errOut, r.Path, src, r.Bag, opts); err != nil {
			return err
		}
	}
	return nil
}

func printDiagnosticsJSON(cmd *cobra.Command, results []*driver.Result) error {
	errOut := cmd.ErrOrStderr()
	for _, r := range results {
		if r.Bag.Len() == 0 {
			continue
		}
		r.Bag.Sort()
		if err := diagfmt.JSON(errOut, r.Path, r.Bag, diagfmt.JSONOpts{IncludeNotes: true}); err != nil {
			return err
		}
	}
	return nil
}

// sourceIsUTF8 reports whether positions can be mapped onto the raw file
// bytes; transcoded input would shift every offset.
func sourceIsUTF8(encoding string) bool {
	switch strings.ToLower(encoding) {
	case "", "auto", "utf-8", "utf8":
		return true
	}
	return false
}

// bagOf rebuilds a diagnostics bag from a capture.
func bagOf(c *capture.Capture, max int) *diag.Bag {
	bag := diag.NewBag(max)
	for _, d := range c.Diagnostics {
		bag.Add(d.Diagnostic())
	}
	return bag
}
