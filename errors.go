package luminal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyInitialized is returned by Window.Init on a second call.
	ErrAlreadyInitialized = errors.New("luminal: window already initialized")

	// ErrNotInitialized is returned by operations that need a live window.
	ErrNotInitialized = errors.New("luminal: window not initialized")

	// ErrResourceNotFound is returned when neither the bundle, the filesystem
	// nor the built-in fonts can resolve a resource name.
	ErrResourceNotFound = errors.New("luminal: resource not found")

	// ErrDecode is returned when image bytes cannot be decoded.
	ErrDecode = errors.New("luminal: decode failed")

	// ErrAtlasBake is returned when the glyph range does not fit the atlas.
	ErrAtlasBake = errors.New("luminal: atlas bake failed")

	// ErrReleased is returned when a component is used after Cleanup.
	ErrReleased = errors.New("luminal: resource already released")
)

// ShaderStage names the step of program creation that failed.
type ShaderStage string

const (
	StageVertex   ShaderStage = "vertex"
	StageFragment ShaderStage = "fragment"
	StageLink     ShaderStage = "link"
)

// ShaderError carries the driver's info log for a failed compile or link.
type ShaderError struct {
	Stage ShaderStage
	Log   string
}

func (e *ShaderError) Error() string {
	log := strings.TrimRight(e.Log, "\x00\n ")
	if e.Stage == StageLink {
		return fmt.Sprintf("shader program linking failed: %s", log)
	}
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, log)
}
