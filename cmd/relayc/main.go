package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BigsonLvrocha/relay/internal/compiler"
	"github.com/BigsonLvrocha/relay/internal/otel"
)

const rootUsage = `relayc — refetchable-fragment compiler

USAGE:
  relayc <command> [flags]

COMMANDS:
  compile          Rewrite @refetchable fragments into standalone queries
  help             Show help for any command
`

const compileUsage = `compile FLAGS:
  -graphql.root <dir>   Source root to scan for .graphql units (default: .)
  -out <dir>            Write each query to <dir>/<QueryName>.graphql
                        (default: print to stdout)
  -otel.endpoint <addr> OTLP collector endpoint
  -otel.service <name>  OpenTelemetry service name (default: relayc)
  (Exits non-zero when any unit has violations)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("relayc", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "compile":
		return cmdCompile(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "compile":
		fmt.Print(compileUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdCompile(args []string) error {
	rootDir := "."
	outDir := ""
	otelEndpoint := ""
	otelService := "relayc"

	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&rootDir, "graphql.root", rootDir, "Source root to scan for .graphql units")
	fs.StringVar(&outDir, "out", outDir, "Output directory for synthesized queries")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, compileUsage)
		return err
	}

	ctx := context.Background()
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer shutdown(ctx)

	result, err := compiler.Load(ctx, rootDir)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	for _, out := range result.Outputs {
		if outDir == "" {
			fmt.Printf("# %s (fragment %s, unit %s)\n%s\n", out.QueryName, out.FragmentName, out.Unit, out.Source)
			continue
		}
		path := filepath.Join(outDir, out.QueryName+".graphql")
		if err := os.WriteFile(path, []byte(out.Source), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	if err := result.Err(); err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return fmt.Errorf("%d violation(s)", len(result.Violations))
	}
	return nil
}
