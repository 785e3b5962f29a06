// Package app is the interactive mesh anatomy viewer shell: it owns the
// window backend, the offscreen 3D viewport, and the reveal session, and
// drives them from the ImGui frame loop.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshanatomy/internal/config"
	"github.com/Faultbox/meshanatomy/internal/engine/camera"
	"github.com/Faultbox/meshanatomy/internal/engine/tween"
	"github.com/Faultbox/meshanatomy/internal/render"
	"github.com/Faultbox/meshanatomy/internal/reveal"
	"github.com/Faultbox/meshanatomy/internal/scene"
)

const defaultStatus = "Pick a shape and reveal its vertices"

// shapeNames are the built-in primitives offered by the shape selector.
var shapeNames = []string{"Cube", "Cylinder", "Cone", "Sphere"}

// App holds all viewer state and the window backend.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	cfg     *config.Config

	// 3D state. The viewport is created lazily on the first frame,
	// once the GL context exists.
	viewport  *render.Viewport
	scene     *scene.Scene
	camera    *camera.OrbitCamera
	scheduler *tween.Scheduler
	session   *reveal.Session

	// UI state
	shapeIndex int    // index into shapeNames, -1 when a model is loaded
	modelName  string // name of the loaded OBJ model, "" for primitives
	status     string
	lastFrame  time.Time
	lastMouse  imgui.Vec2

	// Model loads run off the main thread; results arrive here and are
	// applied in frame(). Last writer wins.
	loadCh chan loadResult

	snapshotMsg  string
	snapshotTime time.Time
}

// New creates the application window and viewer state.
func New(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:        cfg,
		scene:      scene.New(),
		camera:     camera.NewOrbitCamera(),
		scheduler:  tween.NewScheduler(),
		shapeIndex: shapeIndexByName(cfg.Viewer.Shape),
		status:     defaultStatus,
		loadCh:     make(chan loadResult, 1),
	}
	app.session = reveal.NewSession(app.scene, app.scheduler)

	var err error
	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("creating backend: %w", err)
	}

	app.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	app.backend.CreateWindow("Mesh Anatomy", cfg.Graphics.Width, cfg.Graphics.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	return app, nil
}

// Run starts the main loop. Blocks until the window closes.
func (app *App) Run() {
	app.lastFrame = time.Now()
	app.backend.Run(app.frame)
}

// Close releases GL resources.
func (app *App) Close() {
	if app.viewport != nil {
		app.viewport.Destroy()
		app.viewport = nil
	}
}

// selectShape builds the primitive at the given index and hands it to the
// reveal session.
func (app *App) selectShape(index int) {
	if index < 0 || index >= len(shapeNames) {
		index = 0
	}
	app.shapeIndex = index
	app.modelName = ""
	app.setGeometry(buildShape(index, app.cfg.Viewer), shapeNames[index])
}

func shapeIndexByName(name string) int {
	for i, n := range shapeNames {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return 0
}
