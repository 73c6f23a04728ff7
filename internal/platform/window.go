// Package platform owns the native windowing surface. It wraps GLFW
// window creation, translates native input callbacks into router
// events, and provides resource creators that upload assets to the GL
// context.
//
// Everything in this package must run on the main OS thread. NewWindow
// locks the calling goroutine to its thread; the demo host keeps the
// frame loop on that same goroutine.
package platform

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/scrimkit/scrim/internal/logging"
)

// Config holds window creation parameters.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// DefaultConfig returns the demo host defaults.
func DefaultConfig() Config {
	return Config{
		Title:  "scrim overlay demo",
		Width:  1280,
		Height: 720,
		VSync:  true,
	}
}

// Window wraps a GLFW window with an initialized GL 3.3 core context.
type Window struct {
	win *glfw.Window
	log *logging.Logger

	fbWidth  atomic.Int64
	fbHeight atomic.Int64
}

// NewWindow initializes GLFW, creates the window and makes its GL
// context current. The calling goroutine is locked to the main OS
// thread for the lifetime of the process; all later Window methods must
// be called from that goroutine.
func NewWindow(cfg Config, log *logging.Logger) (*Window, error) {
	if log == nil {
		log = logging.Discard
	}
	log = log.WithComponent("platform")

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	// GL 3.3 core profile; macOS requires the forward-compatible flag.
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	log.Info("GL %s on %q", gl.GoStr(gl.GetString(gl.VERSION)), cfg.Title)

	w := &Window{win: win, log: log}
	fw, fh := win.GetFramebufferSize()
	w.fbWidth.Store(int64(fw))
	w.fbHeight.Store(int64(fh))
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.fbWidth.Store(int64(width))
		w.fbHeight.Store(int64(height))
	})
	return w, nil
}

// Poll pumps the native event queue, firing any installed callbacks.
func (w *Window) Poll() { glfw.PollEvents() }

// Swap presents the back buffer.
func (w *Window) Swap() { w.win.SwapBuffers() }

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// SetShouldClose marks the window for closing, ending the frame loop.
func (w *Window) SetShouldClose(v bool) { w.win.SetShouldClose(v) }

// FramebufferSize returns the drawable surface size in pixels. Safe to
// call from any goroutine.
func (w *Window) FramebufferSize() (int, int) {
	return int(w.fbWidth.Load()), int(w.fbHeight.Load())
}

// Size returns the window size in screen coordinates.
func (w *Window) Size() (int, int) { return w.win.GetSize() }

// SetTitle updates the window title.
func (w *Window) SetTitle(title string) { w.win.SetTitle(title) }

// CursorPosition returns the cursor location in screen coordinates
// relative to the window's top-left corner.
func (w *Window) CursorPosition() (x, y float64) { return w.win.GetCursorPos() }

// Handle exposes the underlying GLFW window for callback installation.
func (w *Window) Handle() *glfw.Window { return w.win }

// Clear resets the viewport to the current framebuffer size and clears
// the color buffer.
func (w *Window) Clear(r, g, b, a float32) {
	fw, fh := w.FramebufferSize()
	gl.Viewport(0, 0, int32(fw), int32(fh))
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Close destroys the window and shuts GLFW down. The window must not
// be used afterwards.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
	w.log.Debug("window destroyed")
}
