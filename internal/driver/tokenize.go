// Package driver runs the tokenizer over files and directories: chunked
// reads, input transcoding, diagnostics collection and parallel fan-out.
// Each document's events are kept as a capture so any renderer (or a later
// replay) sees the exact framed stream.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"saxwasm/internal/arena"
	"saxwasm/internal/capture"
	"saxwasm/internal/diag"
	"saxwasm/internal/engine"
	"saxwasm/internal/event"
	"saxwasm/internal/logging"
	"saxwasm/internal/observ"
	"saxwasm/internal/source"
	"saxwasm/internal/trace"
)

const DefaultChunkSize = 32 * 1024

type Options struct {
	Events         event.Set
	ChunkSize      int
	InputSize      int
	WhitespaceText bool
	MaxDiagnostics int
	Encoding       string

	Tracer   trace.Tracer  // может быть nil
	Timer    *observ.Timer // может быть nil
	Progress ProgressSink  // может быть nil
	Logger   *log.Logger   // nil - logging.FromContext
}

type Result struct {
	Path    string
	Capture *capture.Capture
	Bag     *diag.Bag
	Stats   engine.Stats
	Elapsed time.Duration
}

// Tokenize reads path in chunks and tokenizes it as one document. Load
// failures land in the result's bag as IOLoadFileError; err is reserved for
// cancellation and engine misuse.
func Tokenize(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return loadFailure(path, opts, err), nil
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logger(ctx, opts).Warn("close failed", logging.FieldPath, path, logging.FieldError, closeErr)
		}
	}()
	var size int64
	if info, statErr := f.Stat(); statErr == nil {
		size = info.Size()
	}
	return tokenize(ctx, path, f, size, opts)
}

// TokenizeReader tokenizes r as one document labelled name.
func TokenizeReader(ctx context.Context, name string, r io.Reader, opts Options) (*Result, error) {
	return tokenize(ctx, name, r, 0, opts)
}

func tokenize(ctx context.Context, name string, r io.Reader, size int64, opts Options) (*Result, error) {
	start := time.Now()
	done := opts.Timer.Track(name)
	ctx, span := trace.Start(ctx, trace.ScopeDocument, "tokenize", name)

	res := &Result{
		Path:    name,
		Capture: capture.New(name, opts.Events),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}

	dedup := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	var eng *engine.Engine
	eng, err := engine.New(func(kind event.Kind, p arena.Ptr) {
		raw, viewErr := eng.Memory().View(p)
		if viewErr != nil {
			panic(fmt.Errorf("engine handed out %s: %w", p, viewErr))
		}
		res.Capture.Add(kind, raw)
	}, engine.Options{
		InputSize:      opts.InputSize,
		Events:         opts.Events,
		WhitespaceText: opts.WhitespaceText,
		Reporter:       dedup,
		Tracer:         tracer,
		TraceParent:    span.ID(),
	})
	if err != nil {
		span.End("error")
		return nil, err
	}

	emit(opts.Progress, Event{File: name, Stage: StageRead, Status: StatusWorking})
	err = feed(ctx, eng, name, r, size, opts)
	if err == nil {
		err = eng.End()
	}
	res.Stats = eng.Stats()
	res.Elapsed = time.Since(start)
	res.Capture.Diagnostics = captureDiags(res.Bag)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			emit(opts.Progress, Event{File: name, Stage: StageTokenize, Status: StatusError, Err: err, Elapsed: res.Elapsed})
			span.End("cancelled")
			done("cancelled")
			return nil, err
		}
		reportIO(res.Bag, diag.IODecodeError, name, err)
	}

	status := StatusDone
	if err != nil {
		status = StatusError
	}
	emit(opts.Progress, Event{File: name, Stage: StageTokenize, Status: status, Fraction: 1, Err: err, Elapsed: res.Elapsed})
	note := fmt.Sprintf("%d bytes, %d events", res.Stats.Bytes, res.Stats.Events)
	span.WithExtra("events", fmt.Sprint(res.Stats.Events)).End(note)
	done(note)
	logger(ctx, opts).Debug("tokenized",
		logging.FieldPath, name,
		logging.FieldBytes, res.Stats.Bytes,
		logging.FieldWrites, res.Stats.Writes,
		logging.FieldEvents, res.Stats.Events,
		logging.FieldDiagnostics, res.Bag.Len(),
		"duplicates", dedup.Suppressed(),
		logging.FieldElapsed, res.Elapsed)
	return res, nil
}

// feed copies r into the engine's input window chunk by chunk.
func feed(ctx context.Context, eng *engine.Engine, name string, r io.Reader, size int64, opts Options) error {
	in, err := decodeInput(r, opts.Encoding)
	if err != nil {
		return err
	}
	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	var consumed int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		window, err := eng.Input(chunk)
		if err != nil {
			return err
		}
		n, readErr := in.Read(window[:chunk])
		if n > 0 {
			if err := eng.Write(n); err != nil {
				return err
			}
			consumed += int64(n)
			if size > 0 {
				emit(opts.Progress, Event{File: name, Stage: StageTokenize, Status: StatusWorking, Fraction: min(1, float64(consumed)/float64(size))})
			}
		}
		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

func loadFailure(path string, opts Options, err error) *Result {
	res := &Result{
		Path:    path,
		Capture: capture.New(path, opts.Events),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	reportIO(res.Bag, diag.IOLoadFileError, path, err)
	res.Capture.Diagnostics = captureDiags(res.Bag)
	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusError, Err: err})
	return res
}

func reportIO(bag *diag.Bag, code diag.Code, path string, err error) {
	bag.Add(diag.New(diag.SevError, code, source.Range{}, fmt.Sprintf("%s: %v", path, err)))
}

func captureDiags(bag *diag.Bag) []capture.Diag {
	items := bag.Items()
	if len(items) == 0 {
		return nil
	}
	out := make([]capture.Diag, len(items))
	for i, d := range items {
		out[i] = capture.Diag{Severity: uint8(d.Severity), Code: uint16(d.Code), Message: d.Message, Range: d.Primary}
	}
	return out
}

func logger(ctx context.Context, opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return logging.FromContext(ctx)
}
