// SPDX-License-Identifier: Apache-2.0
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"genvmlint/internal/errors"
	"genvmlint/internal/linter"
)

func main() {
	jsonOutput := false
	var paths []string
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			usage()
			os.Exit(0)
		default:
			paths = append(paths, arg)
		}
	}
	if len(paths) == 0 {
		usage()
		os.Exit(1)
	}

	startTime := time.Now()
	l := linter.New()

	var all []errors.Finding
	for _, path := range paths {
		findings := l.LintFile(path)
		all = append(all, findings...)

		if !jsonOutput {
			source := ""
			if data, err := os.ReadFile(path); err == nil {
				source = string(data)
			}
			fmt.Print(errors.NewReporter(path, source).FormatAll(findings))
		}
	}

	if jsonOutput {
		data, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode findings: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	}

	duration := formatDuration(time.Since(startTime))
	if linter.HasErrors(all) {
		if !jsonOutput {
			color.Red("Lint failed after %s", duration)
		}
		os.Exit(1)
	}
	if !jsonOutput {
		color.Green("Checked %d file(s) in %s", len(paths), duration)
	}
}

func usage() {
	fmt.Println("Usage: genvmlint [--json] <contract.py> [more files...]")
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
