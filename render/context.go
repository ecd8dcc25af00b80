// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
// It is an alias for gpucontext.DeviceProvider so any gogpu host can be
// passed directly to ContextFromProvider.
type DeviceHandle = gpucontext.DeviceProvider

// halProvider is the provider extension that exposes the HAL objects
// behind a DeviceHandle.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

var (
	// ErrNoHALDevice is returned when a provider does not expose a
	// hal.Device and hal.Queue.
	ErrNoHALDevice = errors.New("render: provider does not expose HAL device")

	// ErrNilProvider is returned by ContextFromProvider for a nil provider.
	ErrNilProvider = errors.New("render: nil device provider")
)

// Context is the shared GPU state every scene object is primed with: the
// device and queue plus the pixel formats and sample count of the
// attachments the renderer draws into.
//
// Contexts are compared by value. Changing any field through
// Renderer.SetContext invalidates all render targets.
type Context struct {
	Device hal.Device
	Queue  hal.Queue

	ColorFormat   gputypes.TextureFormat
	DepthFormat   gputypes.TextureFormat
	StencilFormat gputypes.TextureFormat

	// SampleCount is the MSAA sample count. Zero means 1.
	SampleCount uint32
}

// Samples returns the effective sample count, at least 1.
func (c Context) Samples() uint32 {
	if c.SampleCount == 0 {
		return 1
	}
	return c.SampleCount
}

// Multisampled reports whether the context renders with MSAA.
func (c Context) Multisampled() bool {
	return c.Samples() > 1
}

// Combined reports whether DepthFormat packs a stencil aspect, in which
// case the stencil attachment shares the depth texture.
func (c Context) Combined() bool {
	return c.DepthFormat.HasDepth() && c.DepthFormat.HasStencil()
}

// format returns the pixel format governing the given target kind.
func (c Context) format(kind TargetKind) gputypes.TextureFormat {
	switch kind {
	case TargetColor:
		return c.ColorFormat
	case TargetDepth:
		return c.DepthFormat
	case TargetStencil:
		if c.Combined() {
			return c.DepthFormat
		}
		return c.StencilFormat
	}
	return gputypes.TextureFormatUndefined
}

// ContextFromProvider builds a Context from a host DeviceHandle. The color
// format is taken from the provider's surface format; depth and stencil
// formats and the sample count come from the caller.
//
// The provider must implement HalDevice() any and HalQueue() any returning
// a hal.Device and a hal.Queue.
func ContextFromProvider(provider DeviceHandle, depth, stencil gputypes.TextureFormat, samples uint32) (Context, error) {
	if provider == nil {
		return Context{}, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return Context{}, ErrNoHALDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return Context{}, fmt.Errorf("%w: HalDevice returned %T", ErrNoHALDevice, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return Context{}, fmt.Errorf("%w: HalQueue returned %T", ErrNoHALDevice, hp.HalQueue())
	}
	return Context{
		Device:        device,
		Queue:         queue,
		ColorFormat:   provider.SurfaceFormat(),
		DepthFormat:   depth,
		StencilFormat: stencil,
		SampleCount:   samples,
	}, nil
}
