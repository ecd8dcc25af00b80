// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/g3d/internal/linear"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/math/f32"
)

// LightType is stored in Position[3] of LightData.
type LightType uint32

// Light types understood by lit materials.
const (
	LightDirectional LightType = iota
	LightPoint
	LightSpot
)

// LightDataSize is the size in bytes of one packed LightData.
const LightDataSize = 64

// LightData is the fixed-layout record uploaded per light. It matches the
// WGSL struct
//
//	struct Light {
//	    color: vec4<f32>,     // rgb, intensity
//	    position: vec4<f32>,  // xyz, type
//	    direction: vec4<f32>, // xyz, inverse range
//	    spot: vec4<f32>,      // cone scale, cone offset, 0, 0
//	}
type LightData struct {
	Color     f32.Vec4
	Position  f32.Vec4
	Direction f32.Vec4
	Spot      f32.Vec4
}

// Type returns the light type encoded in Position[3].
func (d LightData) Type() LightType {
	return LightType(d.Position[3])
}

// Put writes d into dst as 16 little-endian float32 values.
// dst must hold LightDataSize bytes.
func (d LightData) Put(dst []byte) {
	_ = dst[LightDataSize-1]
	for i, v := range [4]f32.Vec4{d.Color, d.Position, d.Direction, d.Spot} {
		linear.PutVec4(dst[16*i:], v)
	}
}

// LightBuffer is the GPU buffer holding the LightData of every light
// collected in a frame, in light-list order.
type LightBuffer struct {
	Buffer hal.Buffer
	// Count is the number of LightData records the buffer holds.
	Count  int
	Offset uint64
	Size   uint64
}

// lightAggregator keeps the light buffer in sync with the frame's light
// list.
//
// Instead of subscribing to lights it snapshots each light's identity and
// generation at every sync. Any identity change or generation bump sets a
// single dirty flag, so any number of changes between two syncs coalesce
// into one full re-upload.
type lightAggregator struct {
	label  string
	ctx    Context
	buffer *LightBuffer

	tracked []trackedLight
	dirty   bool
	scratch []byte
}

type trackedLight struct {
	light      Light
	generation uint64
}

// setContext switches devices. The buffer belongs to the old device and is
// released.
func (a *lightAggregator) setContext(ctx Context) {
	if ctx.Device != a.ctx.Device || ctx.Queue != a.ctx.Queue {
		a.release()
	}
	a.ctx = ctx
}

// sync makes the light buffer match lights and returns it, or nil when the
// list is empty or the buffer is unavailable.
func (a *lightAggregator) sync(lights []Light) *LightBuffer {
	if len(lights) == 0 {
		a.release()
		return nil
	}

	if a.buffer == nil || a.buffer.Count != len(lights) {
		a.release()
		buf, err := a.allocate(len(lights))
		if err != nil {
			slogger().Warn("render: light buffer unavailable", "lights", len(lights), "err", err)
			return nil
		}
		a.buffer = buf
		a.dirty = true
	}

	a.track(lights)

	if a.dirty {
		if err := a.upload(lights); err != nil {
			slogger().Warn("render: light buffer upload failed", "err", err)
		} else {
			a.dirty = false
		}
	}
	return a.buffer
}

// track replaces the snapshot of tracked lights, setting the dirty flag
// when any identity or generation differs from the previous snapshot.
func (a *lightAggregator) track(lights []Light) {
	if len(a.tracked) != len(lights) {
		a.dirty = true
		a.tracked = make([]trackedLight, len(lights))
	}
	for i, l := range lights {
		gen := l.Generation()
		t := &a.tracked[i]
		if t.light != l || t.generation != gen {
			a.dirty = true
		}
		t.light = l
		t.generation = gen
	}
}

func (a *lightAggregator) allocate(count int) (*LightBuffer, error) {
	if a.ctx.Device == nil {
		return nil, errNoDevice
	}
	size := uint64(count) * LightDataSize
	buf, err := a.ctx.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: a.label + " Light Buffer",
		Size:  size,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create light buffer: %w", err)
	}
	slogger().Debug("render: light buffer allocated", "lights", count, "size", size)
	return &LightBuffer{Buffer: buf, Count: count, Size: size}, nil
}

func (a *lightAggregator) upload(lights []Light) error {
	n := len(lights) * LightDataSize
	if cap(a.scratch) < n {
		a.scratch = make([]byte, n)
	}
	data := a.scratch[:n]
	for i, l := range lights {
		l.LightData().Put(data[i*LightDataSize:])
	}
	if a.ctx.Queue == nil {
		return errNoQueue
	}
	return a.ctx.Queue.WriteBuffer(a.buffer.Buffer, a.buffer.Offset, data)
}

// release destroys the buffer and forgets the tracked lights.
func (a *lightAggregator) release() {
	if a.buffer != nil {
		if a.ctx.Device != nil && a.buffer.Buffer != nil {
			a.ctx.Device.DestroyBuffer(a.buffer.Buffer)
		}
		a.buffer = nil
	}
	a.tracked = nil
	a.dirty = false
}
