package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// uiMode is the value of --ui. Unknown values fail while flags are parsed.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var uiModes = []uiMode{uiModeAuto, uiModeOn, uiModeOff}

var _ pflag.Value = (*uiMode)(nil)

func (m *uiMode) String() string {
	if *m == "" {
		return string(uiModeAuto)
	}
	return string(*m)
}

func (m *uiMode) Set(value string) error {
	parsed, err := readUIMode(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m *uiMode) Type() string { return "mode" }

func readUIMode(value string) (uiMode, error) {
	v := uiMode(strings.TrimSpace(strings.ToLower(value)))
	if v == "" {
		return uiModeAuto, nil
	}
	if slices.Contains(uiModes, v) {
		return v, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// flagUIMode достаёт --ui из команды; без флага считаем auto.
func flagUIMode(f *pflag.FlagSet) uiMode {
	if fl := f.Lookup("ui"); fl != nil {
		if m, ok := fl.Value.(*uiMode); ok {
			return uiMode(m.String())
		}
	}
	return uiModeAuto
}

// shouldUseTUI: в auto режиме прогресс рисуется в stderr, только если он
// терминал, файлов больше одного и не задан --quiet.
func shouldUseTUI(mode uiMode, files int, quiet bool) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return !quiet && files > 1 && isTerminal(os.Stderr)
	}
}
