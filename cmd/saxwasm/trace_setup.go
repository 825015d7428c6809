package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"saxwasm/internal/trace"
)

type traceFlags struct {
	output    string
	level     string
	mode      string
	format    string
	ringSize  int
	heartbeat time.Duration
}

var traceOpts traceFlags

func bindTraceFlags(pf *pflag.FlagSet) {
	pf.StringVar(&traceOpts.output, "trace", "", `trace output file ("-" for stderr); implies --trace-level=phase`)
	pf.StringVar(&traceOpts.level, "trace-level", "off", "trace level (off|phase|detail|debug)")
	pf.StringVar(&traceOpts.mode, "trace-mode", "stream", "stream writes as it goes, ring keeps the tail and writes it at exit (stream|ring|both)")
	pf.StringVar(&traceOpts.format, "trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.IntVar(&traceOpts.ringSize, "trace-ring-size", 4096, "events kept by --trace-mode=ring")
	pf.DurationVar(&traceOpts.heartbeat, "trace-heartbeat", 0, "emit a heartbeat at this interval (0 disables)")
}

func (f traceFlags) config() (trace.Config, error) {
	level, err := trace.ParseLevel(f.level)
	if err != nil {
		return trace.Config{}, err
	}
	if level == trace.LevelOff && f.output != "" {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(f.mode)
	if err != nil {
		return trace.Config{}, err
	}
	format, err := trace.ParseFormat(f.format)
	if err != nil {
		return trace.Config{}, err
	}
	return trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: f.output,
		RingSize:   f.ringSize,
		Heartbeat:  f.heartbeat,
	}, nil
}

// setupTracing puts the configured tracer into cmd's context. The cleanup
// stops the heartbeat and closes the tracer, which is when ring mode writes.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, err := traceOpts.config()
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if !tracer.Enabled() {
		return func() {}, nil
	}
	heartbeat := trace.StartHeartbeat(tracer, cfg.Heartbeat)
	return func() {
		heartbeat.Stop()
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}
