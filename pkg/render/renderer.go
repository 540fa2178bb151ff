package render

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-racing/internal/config"
	"github.com/leterax/go-racing/internal/openglhelper"
	"github.com/leterax/go-racing/pkg/game"
	"github.com/leterax/go-racing/pkg/input"
	"github.com/leterax/go-racing/pkg/lighting"
	"github.com/rs/zerolog"
)

// Texture units used by the scene shader
const (
	shadowUnit = 0
	skyUnit    = 1
)

const skyFaceSize = 128

// Renderer handles rendering logic and game loop
type Renderer struct {
	window *openglhelper.Window
	log    zerolog.Logger
	cfg    *config.Config

	session *game.Session
	tracker input.Tracker

	// The free camera keeps its own state while the mounted one follows the rig
	freeCamera  *Camera
	mountCamera *Camera

	sceneShader  *openglhelper.Shader
	depthShader  *openglhelper.Shader
	skyboxShader *openglhelper.Shader

	cube    *openglhelper.Mesh
	track   *openglhelper.Mesh
	skybox  *openglhelper.Skybox
	sky     *openglhelper.Cubemap
	shadows *openglhelper.DepthMap

	sun lighting.Sun

	// Timing
	lastFrameTime float64
	totalTime     float32
	frame         game.Frame
}

// NewRenderer opens the window and uploads every GPU resource the scene needs
func NewRenderer(cfg *config.Config, session *game.Session, log zerolog.Logger) (*Renderer, error) {
	window, err := openglhelper.NewWindow(openglhelper.WindowOptions{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := window.Size()

	freeCamera := NewCamera(cfg.Camera.FreeStart)
	freeCamera.LookAt(cfg.Vehicle.Start)
	freeCamera.UpdateProjectionMatrix(width, height)

	mountCamera := NewCamera(cfg.Vehicle.Start)
	mountCamera.SetRotation(DefaultYaw, cfg.Camera.MountPitch)
	mountCamera.SetFOV(cfg.Rig.DefaultZoom)
	mountCamera.UpdateProjectionMatrix(width, height)

	r := &Renderer{
		window:      window,
		log:         log,
		cfg:         cfg,
		session:     session,
		freeCamera:  freeCamera,
		mountCamera: mountCamera,
		sun:         lighting.NewSun(cfg.Light.Direction, cfg.Light.OrbitSpeed),
	}

	if err := r.initResources(); err != nil {
		r.Cleanup()
		return nil, err
	}

	window.GLFWWindow().SetKeyCallback(r.keyCallback)
	window.GLFWWindow().SetCursorPosCallback(r.cursorPosCallback)
	window.GLFWWindow().SetScrollCallback(r.scrollCallback)
	window.GLFWWindow().SetFramebufferSizeCallback(r.framebufferSizeCallback)
	window.GLFWWindow().SetFocusCallback(r.focusCallback)

	return r, nil
}

func (r *Renderer) initResources() error {
	var err error
	dir := r.cfg.Render.ShaderDir

	if r.sceneShader, err = openglhelper.LoadShaderPair(dir, "light_and_shadow"); err != nil {
		return fmt.Errorf("failed to load scene shader: %w", err)
	}
	if r.depthShader, err = openglhelper.LoadShaderPair(dir, "shadow_depth"); err != nil {
		return fmt.Errorf("failed to load depth shader: %w", err)
	}
	if r.skyboxShader, err = openglhelper.LoadShaderPair(dir, "skybox"); err != nil {
		return fmt.Errorf("failed to load skybox shader: %w", err)
	}

	if r.shadows, err = openglhelper.NewDepthMap(r.cfg.Light.ShadowSize); err != nil {
		return fmt.Errorf("failed to create shadow map: %w", err)
	}

	r.cube = openglhelper.NewCube()
	r.track = openglhelper.NewPlane(r.cfg.Render.TrackSize)
	r.skybox = openglhelper.NewSkybox()
	r.sky = openglhelper.NewGradientCubemap(openglhelper.DefaultSky, skyFaceSize)

	r.sceneShader.Use()
	r.sceneShader.SetInt("shadowMap", shadowUnit)
	r.sceneShader.SetInt("skybox", skyUnit)
	r.skyboxShader.Use()
	r.skyboxShader.SetInt("skybox", 0)

	r.log.Debug().
		Int("shadowSize", r.cfg.Light.ShadowSize).
		Float32("trackSize", r.cfg.Render.TrackSize).
		Msg("GPU resources ready")
	return nil
}

// Run starts the main rendering loop and returns when the window closes
func (r *Renderer) Run() {
	defer r.Cleanup()

	r.lastFrameTime = glfw.GetTime()
	r.log.Info().Stringer("mode", r.session.Mode()).Msg("Entering render loop")

	for !r.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := float32(currentTime - r.lastFrameTime)
		r.lastFrameTime = currentTime

		r.update(deltaTime)
		r.render()

		r.window.SwapBuffers()
		r.window.PollEvents()
	}

	r.log.Info().Uint64("frames", r.session.Frames()).Float32("seconds", r.totalTime).Msg("Render loop finished")
}

// update feeds this frame's keys through the session and moves the cameras
func (r *Renderer) update(deltaTime float32) {
	in := r.tracker.Next(HeldActions(r.window, KeyBindings))
	r.frame = r.session.Update(in, deltaTime)
	r.totalTime += r.frame.Delta

	if r.frame.Quit {
		r.window.RequestClose()
	}

	switch r.frame.Mode {
	case game.Free:
		r.freeCamera.ProcessKeyboardInput(r.frame.Delta, r.window)
	case game.Fixed:
		MountCamera(r.mountCamera, r.frame)
	}
}

// MountCamera moves cam onto the rig view of a Fixed frame and applies its zoom
func MountCamera(cam *Camera, frame game.Frame) {
	cam.SetView(frame.View.Position, frame.View.Yaw)
	cam.SetFOV(frame.Zoom)
}

// activeCamera returns the camera the current frame is viewed through
func (r *Renderer) activeCamera() *Camera {
	if r.frame.Mode == game.Fixed {
		return r.mountCamera
	}
	return r.freeCamera
}

func (r *Renderer) render() {
	objects := SceneObjects(r.frame)
	lightDir := r.sun.At(r.totalTime)
	lightSpace := lighting.LightSpaceMatrix(lightDir, r.frame.Pose.MidPosition, r.cfg.Light.ShadowExtent, r.cfg.Light.ShadowDistance)

	// Shadows are always filled so wireframe only affects the visible passes
	r.window.SetWireframe(false)
	r.renderShadows(objects, lightSpace)

	r.window.Clear(r.cfg.Render.ClearColor)
	r.window.SetWireframe(r.frame.Wireframe)

	camera := r.activeCamera()
	r.renderScene(objects, camera, lightDir, lightSpace)
	r.renderSkybox(camera)
}

func (r *Renderer) renderShadows(objects []Object, lightSpace mgl32.Mat4) {
	r.shadows.Begin()
	r.depthShader.Use()
	r.depthShader.SetMat4("lightSpaceMatrix", lightSpace)
	for _, obj := range objects {
		if !obj.CastsShadow {
			continue
		}
		r.depthShader.SetMat4("model", obj.Model)
		r.draw(obj.Shape)
	}
	r.shadows.End()
}

func (r *Renderer) renderScene(objects []Object, camera *Camera, lightDir mgl32.Vec3, lightSpace mgl32.Mat4) {
	s := r.sceneShader
	s.Use()
	s.SetMat4("view", camera.ViewMatrix())
	s.SetMat4("projection", camera.ProjectionMatrix())
	s.SetMat4("lightSpaceMatrix", lightSpace)
	s.SetVec3("viewPos", camera.Position())
	s.SetVec3("lightDir", lightDir)
	s.SetVec3("lightColor", r.sun.Color)

	r.shadows.BindTexture(shadowUnit)
	r.sky.Bind(skyUnit)

	for _, obj := range objects {
		s.SetMat4("model", obj.Model)
		s.SetVec4("objectColor", obj.Color.Vec4(1))
		s.SetBool("checker", obj.Shape == ShapePlane)
		r.draw(obj.Shape)
	}
}

func (r *Renderer) renderSkybox(camera *Camera) {
	r.skyboxShader.Use()
	r.skyboxShader.SetMat4("view", camera.SkyboxViewMatrix())
	r.skyboxShader.SetMat4("projection", camera.ProjectionMatrix())
	r.skybox.Draw(r.sky)
}

func (r *Renderer) draw(shape Shape) {
	switch shape {
	case ShapePlane:
		r.track.Draw()
	default:
		r.cube.Draw()
	}
}

// Cleanup frees all resources
func (r *Renderer) Cleanup() {
	for _, s := range []*openglhelper.Shader{r.sceneShader, r.depthShader, r.skyboxShader} {
		if s != nil {
			s.Delete()
		}
	}
	if r.cube != nil {
		r.cube.Delete()
	}
	if r.track != nil {
		r.track.Delete()
	}
	if r.skybox != nil {
		r.skybox.Delete()
	}
	if r.sky != nil {
		r.sky.Delete()
	}
	if r.shadows != nil {
		r.shadows.Delete()
	}

	r.window.Close()
}

// Callback functions
func (r *Renderer) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == KeyMouseCapture && action == glfw.Press {
		r.window.SetMouseCaptured(!r.window.IsMouseCaptured())
		r.freeCamera.ResetMouseState()
	}
}

func (r *Renderer) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	if r.window.IsMouseCaptured() && r.session.Mode() == game.Free {
		r.freeCamera.HandleMouseMovement(xpos, ypos)
	}
}

func (r *Renderer) scrollCallback(_ *glfw.Window, _, yoffset float64) {
	if r.session.Mode() == game.Free {
		r.freeCamera.HandleMouseScroll(yoffset)
	}
}

func (r *Renderer) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	r.window.OnResize(width, height)
	r.freeCamera.UpdateProjectionMatrix(width, height)
	r.mountCamera.UpdateProjectionMatrix(width, height)
}

// Keys released while unfocused never report a release; start clean
func (r *Renderer) focusCallback(_ *glfw.Window, focused bool) {
	if !focused {
		r.tracker.Reset()
		r.log.Debug().Msg("Window lost focus")
	}
}
