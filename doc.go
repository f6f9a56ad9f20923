/*
Package luminal is a small single-pass renderer: a window with a frame loop,
textured and flat-colored meshes, a yaw-only camera and bitmap-font text
baked at startup.

# Overview

Everything that talks to the GPU goes through the Device interface, and
everything that talks to the windowing system goes through Platform and
Surface. The opengl backend implements all three with go-gl and GLFW; tests
use in-memory fakes.

A draw is a DrawCall value carrying its own program, vertex array,
textures, uniforms, blend mode and depth test. The device applies that
state for the one call and then restores the baseline set by
Device.Configure, so no draw inherits state left behind by another.

# Quick Start

	cfg := luminal.DefaultConfig()
	window := luminal.NewWindow(opengl.NewPlatform(nil), cfg)
	if err := window.Init(); err != nil {
	    return err
	}
	defer window.Cleanup()

	res := luminal.NewResources(assets.FS, "")
	font, _ := luminal.NewFontAtlas(window.Device(), res, "gofont:regular", 28)
	defer font.Cleanup()
	window.OnResize(func(w, h int) { font.SetProjection(w, h) })

	return window.Loop(func(f luminal.Frame) error {
	    return font.Render("Hello", 10, 40, 1, 1, 1)
	})

# Transforms

A Transform holds one model matrix. Translate and Rotate accumulate: the
new operation is multiplied on the right, so it applies to vertices before
everything already in the matrix. SetScale and SetRotation replace: they
start again from the identity and discard any earlier translation.
SetPosition only overwrites the translation column.

The same operations exist as pure functions:

	t := luminal.Replace(luminal.Scaling(2, 2, 2))            // identity·S
	t = luminal.Compose(t, luminal.Translation(1, 0, 0))       // S·T
	m := luminal.Build(scale, 90, axisY, position).Matrix()    // T·R·S

# Text

NewFontAtlas bakes a contiguous code point range (printable ASCII by
default) into a single-channel bitmap. Text is drawn with its baseline at
the given pixel position under a top-left-origin orthographic projection.
Runes outside the baked range are skipped and do not move the pen.

# Keyboard

	W / S        Move forward / backward (demo)
	A / D        Turn left / right (demo)
	F11          Toggle fullscreen (configurable)
	Esc          Request close
*/
package luminal
