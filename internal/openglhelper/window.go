package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// Window handles GLFW window creation and management
type Window struct {
	glfwWindow    *glfw.Window
	width         int
	height        int
	mouseCaptured bool
	wireframe     bool
}

// WindowOptions configures NewWindow
type WindowOptions struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// NewWindow creates a new GLFW window with an OpenGL 4.6 core context
func NewWindow(opts WindowOptions, log zerolog.Logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	glfwWindow, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info().
		Str("version", gl.GoStr(gl.GetString(gl.VERSION))).
		Str("renderer", gl.GoStr(gl.GetString(gl.RENDERER))).
		Msg("OpenGL context ready")

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// The framebuffer can differ from the requested size on HiDPI displays
	fbWidth, fbHeight := glfwWindow.GetFramebufferSize()

	return &Window{
		glfwWindow: glfwWindow,
		width:      fbWidth,
		height:     fbHeight,
	}, nil
}

// Clear clears the color and depth buffers of the default framebuffer
func (w *Window) Clear(color mgl32.Vec4) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(w.width), int32(w.height))
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SwapBuffers swaps the front and back buffers
func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents processes pending events
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose returns whether the window should close
func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// RequestClose marks the window for closing at the end of the frame
func (w *Window) RequestClose() {
	w.glfwWindow.SetShouldClose(true)
}

// Close releases all resources
func (w *Window) Close() {
	glfw.Terminate()
}

// Size returns the framebuffer dimensions
func (w *Window) Size() (width, height int) {
	return w.width, w.height
}

// IsKeyDown reports whether key is currently pressed or repeating
func (w *Window) IsKeyDown(key glfw.Key) bool {
	state := w.glfwWindow.GetKey(key)
	return state == glfw.Press || state == glfw.Repeat
}

// OnResize is called when the framebuffer is resized
func (w *Window) OnResize(width, height int) {
	w.width = width
	w.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// GLFWWindow returns the underlying GLFW window
func (w *Window) GLFWWindow() *glfw.Window {
	return w.glfwWindow
}

// SetMouseCaptured captures or releases the mouse cursor
func (w *Window) SetMouseCaptured(captured bool) {
	w.mouseCaptured = captured

	if captured {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// IsMouseCaptured returns whether the mouse is currently captured
func (w *Window) IsMouseCaptured() bool {
	return w.mouseCaptured
}

// SetWireframe switches polygon rasterization between lines and fill
func (w *Window) SetWireframe(on bool) {
	if on == w.wireframe {
		return
	}
	w.wireframe = on
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}
