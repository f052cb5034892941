// Command tsbindgen drives the binding-generator pipeline from the
// command line: parse flags, load policy, run the pipeline, print
// diagnostics, exit 0 on success or non-zero on any Gate error (spec §6
// "Exit codes").
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/emitcache"
	"github.com/tsoniclang/tsbindgen/internal/policy"
	"github.com/tsoniclang/tsbindgen/internal/telemetry"
	"github.com/tsoniclang/tsbindgen/pkg/bindgen"
)

func main() {
	var (
		outDir     = flag.String("out", "", "output directory for generated artifacts (no emit when empty)")
		policyPath = flag.String("policy", "", "path to a tsbindgen.yaml policy file (defaults applied when empty)")
		cacheDir   = flag.String("cache-dir", "", "emission-plan cache directory (disabled when empty)")
		noColor    = flag.Bool("no-color", false, "disable colored diagnostic output")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <manifest-path> [manifest-path...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	pol := policy.Default()
	if *policyPath != "" {
		loaded, err := policy.Load(*policyPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "tsbindgen:", err)
			os.Exit(1)
		}
		pol = loaded
	}

	var cache *emitcache.Cache
	if *cacheDir != "" {
		cache = emitcache.New(*cacheDir)
	}

	tel, err := telemetry.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tsbindgen: telemetry:", err)
		os.Exit(1)
	}

	result, err := bindgen.Run(context.Background(), bindgen.Options{
		Paths:     paths,
		Policy:    pol,
		OutDir:    *outDir,
		Cache:     cache,
		Telemetry: tel,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "tsbindgen:", err)
		os.Exit(1)
	}

	color := !*noColor && (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	printSummary(result, color)

	if result.Gate.Failed {
		os.Exit(1)
	}
	os.Exit(0)
}

func printSummary(result *bindgen.Result, color bool) {
	if result.FromCache {
		fmt.Println("tsbindgen: unchanged (cache hit)")
		return
	}
	for _, d := range result.Diagnostics.All() {
		fmt.Println(formatDiagnostic(d, color))
	}
	fmt.Printf("tsbindgen: run %s, %d diagnostics, failed=%v\n", result.RunID, len(result.Diagnostics.All()), result.Gate.Failed)
	if len(result.Written) > 0 {
		fmt.Println("tsbindgen: wrote", strings.Join(result.Written, ", "))
	}
}

func formatDiagnostic(d *diagnostics.Diagnostic, color bool) string {
	if !color {
		return d.Error()
	}
	codeColor := "\033[36m"
	reset := "\033[0m"
	switch d.Severity {
	case diagnostics.Error:
		codeColor = "\033[31m"
	case diagnostics.Warning:
		codeColor = "\033[33m"
	}
	return codeColor + d.Severity.String() + reset + " [" + string(d.Code) + "] " + d.Site.String() + ": " + d.Message
}
