package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"saxwasm/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show saxwasm build fingerprints",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	f := versionCmd.Flags()
	f.Bool("hash", false, "include git commit hash")
	f.Bool("message", false, "include git commit message")
	f.Bool("date", false, "include build timestamp")
	f.Bool("full", false, "show every recorded bit of build metadata")
	f.String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	full, _ := f.GetBool("full")
	show := func(name string) bool {
		v, _ := f.GetBool(name)
		return v || full
	}
	info := version.Collect()
	// скрытые поля не выводим ни в каком формате
	fields := []struct {
		flag, label string
		value       *string
	}{
		{"hash", "commit", &info.GitCommit},
		{"message", "message", &info.GitMessage},
		{"date", "built", &info.BuildDate},
	}
	for _, fd := range fields {
		switch {
		case !show(fd.flag):
			*fd.value = ""
		case *fd.value == "":
			*fd.value = "unknown"
		}
	}

	format, _ := f.GetString("format")
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Tool string `json:"tool"`
			version.Info
		}{"saxwasm", info})
	case "pretty":
		fmt.Fprintf(out, "saxwasm %s\n", version.Colored(info.Version))
		for _, fd := range fields {
			if *fd.value != "" {
				fmt.Fprintf(out, "%-8s %s\n", fd.label+":", *fd.value)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}
