// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gputypes"
)

var (
	// ErrUnknownFormat is returned for a texture format name gputypes does
	// not define.
	ErrUnknownFormat = errors.New("render: unknown texture format")

	// ErrUnknownOp is returned for an unknown load or store operation name.
	ErrUnknownOp = errors.New("render: unknown attachment operation")
)

// formatNames maps lower-cased gputypes format names to formats.
var formatNames = sync.OnceValue(func() map[string]gputypes.TextureFormat {
	m := make(map[string]gputypes.TextureFormat)
	for f := gputypes.TextureFormatUndefined; f <= gputypes.TextureFormatASTC12x12UnormSrgb; f++ {
		name := f.String()
		if name == "Unknown" {
			continue
		}
		m[strings.ToLower(name)] = f
	}
	return m
})

// ParseTextureFormat returns the format with the given gputypes name,
// compared case-insensitively ("BGRA8Unorm", "depth32floatstencil8").
// An empty name is TextureFormatUndefined.
func ParseTextureFormat(name string) (gputypes.TextureFormat, error) {
	if name == "" {
		return gputypes.TextureFormatUndefined, nil
	}
	f, ok := formatNames()[strings.ToLower(name)]
	if !ok {
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// ParseLoadOp parses "Load" or "Clear", case-insensitively.
func ParseLoadOp(name string) (gputypes.LoadOp, error) {
	for _, op := range []gputypes.LoadOp{gputypes.LoadOpLoad, gputypes.LoadOpClear} {
		if strings.EqualFold(name, op.String()) {
			return op, nil
		}
	}
	return gputypes.LoadOpUndefined, fmt.Errorf("%w: load %q", ErrUnknownOp, name)
}

// ParseStoreOp parses "Store" or "Discard", case-insensitively.
func ParseStoreOp(name string) (gputypes.StoreOp, error) {
	for _, op := range []gputypes.StoreOp{gputypes.StoreOpStore, gputypes.StoreOpDiscard} {
		if strings.EqualFold(name, op.String()) {
			return op, nil
		}
	}
	return gputypes.StoreOpUndefined, fmt.Errorf("%w: store %q", ErrUnknownOp, name)
}
