package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/erinpentecost/ddsdecode/internal/dds"
	"github.com/spf13/pflag"
)

const usage = `usage:
  ddsdecode convert [flags] FILE...
  ddsdecode info FILE...
`

var errUsage = errors.New("bad arguments")

func run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return errUsage
	}
	switch args[0] {
	case "convert":
		return convertCommand(ctx, args[1:])
	case "info":
		return infoCommand(os.Stdout, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func convertCommand(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	outDir := fs.StringP("out-dir", "o", "", "write images here instead of next to each input")
	format := fs.StringP("format", "f", "png", "output format: png, bmp or tga")
	scale := fs.Int("scale", 1, "downscale factor applied after decoding")
	threads := fs.IntP("threads", "j", 4, "files converted concurrently")
	workers := fs.Int("workers", 1, "rows decoded concurrently within one file")
	strict := fs.Bool("strict", false, "fail on short compressed data instead of zero-filling")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: no input files", errUsage)
	}

	enc, err := encoderFor(*format)
	if err != nil {
		return err
	}
	jobs := make([]*convertJob, 0, fs.NArg())
	for _, in := range fs.Args() {
		jobs = append(jobs, &convertJob{
			Input:   in,
			Output:  outputPath(in, *outDir, *format),
			Encoder: enc,
			Scale:   *scale,
			Options: &dds.Options{Strict: *strict, Workers: *workers},
		})
	}
	return convertAll(ctx, jobs, *threads)
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		os.Exit(1)
	}
}
