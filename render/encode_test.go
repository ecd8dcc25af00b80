// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"slices"
	"testing"

	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// countingPass counts draws on a pass without debug group support.
type countingPass struct {
	hal.RenderPassEncoder
	draws int
}

func (p *countingPass) Draw(_, _, _, _ uint32) { p.draws++ }

func frameOf(renderables ...Renderable) Frame {
	return Frame{Renderables: renderables}
}

func TestEncodeNothingToDraw(t *testing.T) {
	e := &frameEncoder{label: "R"}

	rp := &recordingPass{}
	e.encode(rp, newNode("root"), Frame{}, nil)
	if len(rp.events) != 0 {
		t.Errorf("empty frame recorded %v", rp.events)
	}

	root := newNode("root")
	root.hidden = true
	e.encode(rp, root, frameOf(newRenderable("a", 0)), nil)
	if len(rp.events) != 0 {
		t.Errorf("hidden root recorded %v", rp.events)
	}
}

func TestEncodeEventOrder(t *testing.T) {
	rp := &recordingPass{RenderPassEncoder: &noop.RenderPassEncoder{}}
	e := &frameEncoder{
		label:    "R",
		preDraw:  func(hal.RenderPassEncoder) { rp.note("pre") },
		postDraw: func(hal.RenderPassEncoder) { rp.note("post") },
	}

	e.encode(rp, newNode("root"), frameOf(newRenderable("a", 0), newRenderable("b", 0)), nil)

	want := []string{
		"push R Pass", "pre",
		"push a", "draw a", "pop",
		"push b", "draw b", "pop",
		"post", "pop",
	}
	if !slices.Equal(rp.events, want) {
		t.Errorf("events =\n%v\nwant\n%v", rp.events, want)
	}
	if rp.depth != 0 {
		t.Errorf("unbalanced debug groups: depth %d", rp.depth)
	}
	if rp.draws != 2 {
		t.Errorf("draws = %d, want 2", rp.draws)
	}
}

func drawOrder(rp *recordingPass) []string {
	var out []string
	for _, ev := range rp.events {
		if len(ev) > 5 && ev[:5] == "draw " {
			out = append(out, ev[5:])
		}
	}
	return out
}

func TestEncodeSort(t *testing.T) {
	frame := frameOf(
		newRenderable("c", 2),
		newRenderable("a1", 1),
		newRenderable("z", 0),
		newRenderable("a2", 1),
	)

	tests := []struct {
		name string
		sort bool
		want []string
	}{
		{"discovery order", false, []string{"c", "a1", "z", "a2"}},
		{"sorted stable", true, []string{"z", "a1", "a2", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rp := &recordingPass{RenderPassEncoder: &noop.RenderPassEncoder{}}
			e := &frameEncoder{label: "R", sort: tt.sort}
			e.encode(rp, newNode("root"), frame, nil)
			if got := drawOrder(rp); !slices.Equal(got, tt.want) {
				t.Errorf("draw order = %v, want %v", got, tt.want)
			}
		})
	}

	if got := labels(frame.Renderables); !slices.Equal(got, []string{"c", "a1", "z", "a2"}) {
		t.Errorf("sorting mutated the frame list: %v", got)
	}
}

func TestEncodeLitMaterial(t *testing.T) {
	lit := newRenderable("lit", 0)
	litMat := &testMaterial{lighting: true}
	lit.material = litMat

	unlit := newRenderable("unlit", 0)
	unlitMat := &testMaterial{}
	unlit.material = unlitMat

	lights := &LightBuffer{Count: 3}
	rp := &recordingPass{RenderPassEncoder: &noop.RenderPassEncoder{}}
	(&frameEncoder{label: "R"}).encode(rp, newNode("root"), frameOf(lit, unlit), lights)

	if litMat.maxLights != 3 || litMat.bound != lights || litMat.binds != 1 || litMat.updates != 1 {
		t.Errorf("lit material = %+v, want 3 max lights, bound once, updated once", litMat)
	}
	if unlitMat.binds != 0 || unlitMat.updates != 0 {
		t.Errorf("unlit material was touched: %+v", unlitMat)
	}
}

func TestEncodeLitMaterialNoLights(t *testing.T) {
	r := newRenderable("lit", 0)
	m := &testMaterial{lighting: true, maxLights: 8}
	r.material = m

	rp := &recordingPass{RenderPassEncoder: &noop.RenderPassEncoder{}}
	(&frameEncoder{label: "R"}).encode(rp, newNode("root"), frameOf(r), nil)

	if m.maxLights != 0 {
		t.Errorf("maxLights = %d, want 0", m.maxLights)
	}
	if m.binds != 1 || m.bound != nil {
		t.Errorf("BindLights calls = %d with %v, want one call with nil", m.binds, m.bound)
	}
}

func TestEncodeWithoutDebugGroups(t *testing.T) {
	rp := &countingPass{RenderPassEncoder: &noop.RenderPassEncoder{}}
	(&frameEncoder{label: "R"}).encode(rp, newNode("root"), frameOf(newRenderable("a", 0), newRenderable("b", 0)), nil)
	if rp.draws != 2 {
		t.Errorf("draws = %d, want 2", rp.draws)
	}
}

func TestEncodePanicClosesPassScope(t *testing.T) {
	rp := &recordingPass{RenderPassEncoder: &noop.RenderPassEncoder{}}
	e := &frameEncoder{label: "R"}
	bad := newRenderable("bad", 0)
	bad.panicDraw = true

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected the draw panic to propagate")
			}
		}()
		e.encode(rp, newNode("root"), frameOf(bad), nil)
	}()

	if rp.depth != 0 {
		t.Errorf("debug groups left open after panic: depth %d, events %v", rp.depth, rp.events)
	}
}
