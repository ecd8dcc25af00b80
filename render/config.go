// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
)

// Config is the file form of a renderer configuration.
//
//	label = "main"
//	sort_objects = true
//	width = 1280
//	height = 720
//	clear_color = [0.1, 0.1, 0.1, 1.0]
//
//	[formats]
//	color = "BGRA8Unorm"
//	depth = "Depth32FloatStencil8"
//	sample_count = 4
//
//	[depth]
//	load = "Clear"
//	store = "Discard"
type Config struct {
	Label                 string    `toml:"label"`
	SortObjects           bool      `toml:"sort_objects"`
	InvertViewportNearFar bool      `toml:"invert_viewport_near_far"`
	Width                 float32   `toml:"width"`
	Height                float32   `toml:"height"`
	ClearColor            []float64 `toml:"clear_color"`
	ClearDepth            float32   `toml:"clear_depth"`
	ClearStencil          uint32    `toml:"clear_stencil"`

	Formats FormatConfig `toml:"formats"`
	Color   OpsConfig    `toml:"color"`
	Depth   OpsConfig    `toml:"depth"`
	Stencil OpsConfig    `toml:"stencil"`
}

// FormatConfig selects the attachment formats and sample count. Empty
// names leave the corresponding Context field unchanged.
type FormatConfig struct {
	Color       string `toml:"color,omitempty"`
	Depth       string `toml:"depth,omitempty"`
	Stencil     string `toml:"stencil,omitempty"`
	SampleCount uint32 `toml:"sample_count,omitempty"`
}

// OpsConfig holds load/store operation names.
type OpsConfig struct {
	Load  string `toml:"load"`
	Store string `toml:"store"`
}

// DefaultConfig returns the configuration matching a Renderer built
// without options.
func DefaultConfig() Config {
	return Config{
		Label:      DefaultLabel,
		ClearColor: []float64{0, 0, 0, 1},
		Color:      OpsConfig{Load: "Clear", Store: "Store"},
		Depth:      OpsConfig{Load: "Clear", Store: "Discard"},
		Stencil:    OpsConfig{Load: "Clear", Store: "Discard"},
	}
}

// ParseConfig decodes a TOML configuration on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	return LoadConfig(bytes.NewReader(data))
}

// LoadConfig decodes a TOML configuration from r on top of DefaultConfig.
// Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("render: decode config: %w", err)
	}
	if _, err := cfg.Options(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes c as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Options converts c into renderer options.
func (c Config) Options() ([]Option, error) {
	if len(c.ClearColor) != 4 {
		return nil, fmt.Errorf("render: clear_color needs 4 components, got %d", len(c.ClearColor))
	}
	color, err := c.Color.parse()
	if err != nil {
		return nil, fmt.Errorf("render: color: %w", err)
	}
	depth, err := c.Depth.parse()
	if err != nil {
		return nil, fmt.Errorf("render: depth: %w", err)
	}
	stencil, err := c.Stencil.parse()
	if err != nil {
		return nil, fmt.Errorf("render: stencil: %w", err)
	}

	opts := []Option{
		WithSortObjects(c.SortObjects),
		WithInvertViewportNearFar(c.InvertViewportNearFar),
		WithSize(c.Width, c.Height),
		WithClearColor(gputypes.Color{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: c.ClearColor[3]}),
		WithClearDepth(c.ClearDepth),
		WithClearStencil(c.ClearStencil),
		WithColorOps(color),
		WithDepthOps(depth),
		WithStencilOps(stencil),
	}
	if c.Label != "" {
		opts = append(opts, WithLabel(c.Label))
	}
	return opts, nil
}

// Apply returns ctx with the formats and sample count of c.
func (c Config) Apply(ctx Context) (Context, error) {
	for _, f := range []struct {
		name string
		dst  *gputypes.TextureFormat
	}{
		{c.Formats.Color, &ctx.ColorFormat},
		{c.Formats.Depth, &ctx.DepthFormat},
		{c.Formats.Stencil, &ctx.StencilFormat},
	} {
		if f.name == "" {
			continue
		}
		format, err := ParseTextureFormat(f.name)
		if err != nil {
			return ctx, err
		}
		*f.dst = format
	}
	if c.Formats.SampleCount != 0 {
		ctx.SampleCount = c.Formats.SampleCount
	}
	return ctx, nil
}

func (c OpsConfig) parse() (AttachmentOps, error) {
	load, err := ParseLoadOp(c.Load)
	if err != nil {
		return AttachmentOps{}, err
	}
	store, err := ParseStoreOp(c.Store)
	if err != nil {
		return AttachmentOps{}, err
	}
	return AttachmentOps{Load: load, Store: store}, nil
}
