// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"slices"
	"testing"
)

func labels[T Node](nodes []T) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label()
	}
	return out
}

func TestTraversePreOrder(t *testing.T) {
	//        root
	//       /    \
	//      a      d
	//     / \      \
	//    b   c      e
	b, c, e := newRenderable("b", 0), newRenderable("c", 0), newRenderable("e", 0)
	a := newRenderable("a", 0, b, c)
	d := newRenderable("d", 0, e)
	root := newNode("root", a, d)

	frame := traverse(&Context{}, root, &testCamera{}, Viewport{})

	want := []string{"a", "b", "c", "d", "e"}
	if got := labels(frame.Renderables); !slices.Equal(got, want) {
		t.Errorf("renderables = %v, want %v", got, want)
	}
}

func TestTraverseUpdatesEveryNode(t *testing.T) {
	ctx := &Context{SampleCount: 4}
	vp := Viewport{Width: 640, Height: 480, ZFar: 1}
	hidden := newNode("hidden", newRenderable("child", 0))
	hidden.hidden = true
	root := newNode("root", hidden)

	traverse(ctx, root, &testCamera{}, vp)

	for _, n := range []*testNode{root, hidden, &hidden.children[0].(*testRenderable).testNode} {
		if n.ctx != ctx {
			t.Errorf("%s: context not set", n.label)
		}
		if n.updates != 1 || n.cameraUpdates != 1 {
			t.Errorf("%s: updates = %d, camera updates = %d, want 1 and 1", n.label, n.updates, n.cameraUpdates)
		}
		if n.lastViewport != vp {
			t.Errorf("%s: viewport = %+v, want %+v", n.label, n.lastViewport, vp)
		}
	}
}

func TestTraverseInvisibleSubtree(t *testing.T) {
	grandchild := newRenderable("grandchild", 0)
	light := newLight("light", 1)
	hidden := newRenderable("hidden", 0, grandchild, light)
	hidden.hidden = true
	shown := newRenderable("shown", 0)
	root := newNode("root", hidden, shown)

	frame := traverse(&Context{}, root, &testCamera{}, Viewport{})

	if got := labels(frame.Renderables); !slices.Equal(got, []string{"shown"}) {
		t.Errorf("renderables = %v, want [shown]", got)
	}
	if len(frame.Lights) != 0 {
		t.Errorf("lights = %v, want none under a hidden ancestor", labels(frame.Lights))
	}
}

func TestTraverseLightPriority(t *testing.T) {
	both := newLitRenderable("both")
	root := newNode("root", both, newLight("sun", 1))

	frame := traverse(&Context{}, root, &testCamera{}, Viewport{})

	if len(frame.Renderables) != 0 {
		t.Errorf("renderables = %v, want none", labels(frame.Renderables))
	}
	if got := labels(frame.Lights); !slices.Equal(got, []string{"both", "sun"}) {
		t.Errorf("lights = %v, want [both sun]", got)
	}
}

func TestTraverseNotDrawable(t *testing.T) {
	empty := newRenderable("empty", 0)
	empty.drawable = false
	child := newRenderable("child", 0)
	empty.add(child)
	root := newNode("root", empty)

	frame := traverse(&Context{}, root, &testCamera{}, Viewport{})

	if got := labels(frame.Renderables); !slices.Equal(got, []string{"child"}) {
		t.Errorf("renderables = %v, want [child]", got)
	}
}

func TestTraverseHiddenRoot(t *testing.T) {
	root := newRenderable("root", 0, newRenderable("child", 0))
	root.hidden = true

	frame := traverse(&Context{}, root, &testCamera{}, Viewport{})
	if len(frame.Renderables) != 0 || len(frame.Lights) != 0 {
		t.Errorf("hidden root collected %d renderables, %d lights", len(frame.Renderables), len(frame.Lights))
	}
}

func TestCompile(t *testing.T) {
	ctx := &Context{SampleCount: 1}
	leaf := newRenderable("leaf", 0)
	mid := newNode("mid", leaf)
	mid.hidden = true
	root := newNode("root", mid)

	compile(ctx, root)
	compile(ctx, root)

	for _, n := range []*testNode{root, mid, &leaf.testNode} {
		if n.ctx != ctx || n.contextSets != 2 {
			t.Errorf("%s: context sets = %d, want 2", n.label, n.contextSets)
		}
		if n.updates != 0 {
			t.Errorf("%s: compile must not update nodes", n.label)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want capability
	}{
		{"plain", newNode("n"), 0},
		{"renderable", newRenderable("r", 0), capRenderable},
		{"light", newLight("l", 1), capLight},
		{"both", newLitRenderable("b"), capLight | capRenderable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps, _, _ := classify(tt.node)
			if caps != tt.want {
				t.Errorf("classify() = %b, want %b", caps, tt.want)
			}
		})
	}
}
