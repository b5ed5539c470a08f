package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dblezek/tga"
	"github.com/erinpentecost/ddsdecode/internal/dds"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

type imageEncoder func(w io.Writer, m image.Image) error

func encoderFor(format string) (imageEncoder, error) {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode, nil
	case "bmp":
		return bmp.Encode, nil
	case "tga":
		return func(w io.Writer, m image.Image) error { return tga.Encode(w, m) }, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", errUsage, format)
	}
}

// outputPath swaps the extension of in for format, optionally moving the
// file into outDir.
func outputPath(in, outDir, format string) string {
	name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + "." + strings.ToLower(format)
	if outDir == "" {
		return filepath.Join(filepath.Dir(in), name)
	}
	return filepath.Join(outDir, name)
}

type convertJob struct {
	Input   string
	Output  string
	Encoder imageEncoder
	Scale   int
	Options *dds.Options
}

func (j *convertJob) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := os.ReadFile(j.Input)
	if err != nil {
		return fmt.Errorf("read %q: %w", j.Input, err)
	}
	surface, err := dds.DecodeBytes(raw, j.Options)
	if err != nil {
		return fmt.Errorf("decode %q: %w", j.Input, err)
	}

	var img image.Image = surface.NRGBA()
	if j.Scale > 1 {
		img = downscale(img, j.Scale)
	}

	out, err := os.Create(j.Output)
	if err != nil {
		return fmt.Errorf("create %q: %w", j.Output, err)
	}
	defer out.Close()
	if err := j.Encoder(out, img); err != nil {
		return fmt.Errorf("encode %q: %w", j.Output, err)
	}
	fmt.Printf("Decoded %s %dx%d %q -> %q\n", surface.Format, surface.Width, surface.Height, j.Input, j.Output)
	return out.Close()
}

func convertAll(ctx context.Context, jobs []*convertJob, threads int) error {
	fmt.Printf("Converting %d textures...\n", len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(threads, 1))
	for _, j := range jobs {
		g.Go(func() error { return j.Run(gctx) })
	}
	return g.Wait()
}

// downscale shrinks src by factor, never below 1x1.
func downscale(src image.Image, factor int) *image.NRGBA {
	b := src.Bounds()
	w := max(b.Dx()/factor, 1)
	h := max(b.Dy()/factor, 1)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
