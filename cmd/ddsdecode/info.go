package main

import (
	"fmt"
	"io"
	"os"

	"github.com/erinpentecost/ddsdecode/internal/dds"
	"gopkg.in/yaml.v3"
)

type headerInfo struct {
	File          string   `yaml:"file"`
	Format        string   `yaml:"format"`
	Opaque        bool     `yaml:"opaque"`
	PixelDataSize *int     `yaml:"pixelDataSize,omitempty"`
	SizeError     string   `yaml:"sizeError,omitempty"`
	FlagNames     []string `yaml:"flagNames,flow"`
	dds.Metadata  `yaml:",inline"`
}

func readInfo(path string) (*headerInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	m, err := dds.ReadHeader(f)
	if err != nil {
		return nil, fmt.Errorf("read header of %q: %w", path, err)
	}
	info := &headerInfo{
		File:      path,
		Format:    m.Format().String(),
		Opaque:    m.Opaque(),
		FlagNames: m.FlagNames(),
		Metadata:  m,
	}
	if size, err := m.PixelDataSize(); err != nil {
		info.SizeError = err.Error()
	} else {
		info.PixelDataSize = &size
	}
	return info, nil
}

// infoCommand prints one YAML document per file.
func infoCommand(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no input files", errUsage)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	for _, path := range args {
		info, err := readInfo(path)
		if err != nil {
			return err
		}
		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("marshal info for %q: %w", path, err)
		}
	}
	return nil
}
