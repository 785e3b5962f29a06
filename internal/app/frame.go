package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/meshanatomy/internal/engine/capture"
	"github.com/Faultbox/meshanatomy/internal/logger"
	"github.com/Faultbox/meshanatomy/internal/render"
	"github.com/Faultbox/meshanatomy/internal/reveal"
)

const (
	controlPanelWidth = float32(280)
	statusBarHeight   = float32(30)
)

// frame is called by the backend once per frame on the main thread.
func (app *App) frame() {
	now := time.Now()
	dt := float32(now.Sub(app.lastFrame).Seconds())
	app.lastFrame = now
	if dt > 0.1 {
		dt = 0.1 // clamp across stalls so tweens stay watchable
	}

	app.applyPendingLoad()
	app.scheduler.Update(dt)

	// First frame: GL context is live, create the viewport and install
	// the initial shape.
	if app.viewport == nil {
		vp, err := render.NewViewport(512, 512)
		if err != nil {
			logger.Fatal("creating viewport", zap.Error(err))
		}
		app.viewport = vp
		app.selectShape(app.shapeIndex)
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	contentHeight := workSize.Y - statusBarHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(controlPanelWidth, contentHeight))
	if imgui.BeginV("Controls", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+controlPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-controlPanelWidth, contentHeight))
	if imgui.BeginV("Viewport", nil, flags) {
		app.renderViewport()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		imgui.Text(app.status)
	}
	imgui.End()

	// Snapshot notification, shown for two seconds.
	if app.snapshotMsg != "" && time.Since(app.snapshotTime) < 2*time.Second {
		notifyFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
			imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
			imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
		imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+10, workPos.Y+10))
		imgui.SetNextWindowBgAlpha(0.85)
		if imgui.BeginV("##SnapshotNotify", nil, notifyFlags) {
			imgui.Text(app.snapshotMsg)
		}
		imgui.End()
	} else if app.snapshotMsg != "" {
		app.snapshotMsg = ""
	}
}

// renderControls draws the shape selector, the reveal actions, and the
// topology counts.
func (app *App) renderControls() {
	imgui.Text("Shape:")
	preview := app.modelName
	if app.shapeIndex >= 0 {
		preview = shapeNames[app.shapeIndex]
	}
	imgui.SetNextItemWidth(-1)
	if imgui.BeginCombo("##shape", preview) {
		for i, name := range shapeNames {
			if imgui.SelectableBool(name) && i != app.shapeIndex {
				app.selectShape(i)
			}
		}
		imgui.EndCombo()
	}

	if imgui.ButtonV("Load Model...", imgui.NewVec2(-1, 0)) {
		app.openModelDialog()
	}

	imgui.Separator()

	if imgui.ButtonV("Reveal Vertices", imgui.NewVec2(-1, 0)) {
		app.doAction(app.session.RevealVertices,
			fmt.Sprintf("%d vertices revealed", app.session.VertexCount()))
	}
	if imgui.ButtonV("Connect Edges", imgui.NewVec2(-1, 0)) {
		app.doAction(app.session.ConnectEdges,
			fmt.Sprintf("%d edges connected", app.session.EdgeCount()))
	}
	if imgui.ButtonV("Form Faces", imgui.NewVec2(-1, 0)) {
		app.doAction(app.session.FormFaces,
			fmt.Sprintf("%d faces formed", app.session.FaceCount()))
	}
	if imgui.ButtonV("Assemble Mesh", imgui.NewVec2(-1, 0)) {
		app.doAction(app.session.AssembleMesh, "Mesh assembled")
	}
	if imgui.ButtonV("Reset", imgui.NewVec2(-1, 0)) {
		app.session.Reset()
		app.status = defaultStatus
	}

	imgui.Separator()

	imgui.Text(fmt.Sprintf("Vertices: %d", app.session.VertexCount()))
	imgui.Text(fmt.Sprintf("Edges: %d", app.session.EdgeCount()))
	imgui.Text(fmt.Sprintf("Faces: %d", app.session.FaceCount()))

	imgui.Separator()

	if imgui.ButtonV("Snapshot", imgui.NewVec2(-1, 0)) {
		app.takeSnapshot()
	}
	imgui.TextDisabled("(Drag to rotate, scroll to zoom)")
}

// doAction runs a reveal action. Precondition failures are the normal
// result of pressing buttons out of order, so they stay silent in the UI.
func (app *App) doAction(action func() error, okStatus string) {
	err := action()
	switch {
	case err == nil:
		app.status = okStatus
	case errors.Is(err, reveal.ErrNoTopology),
		errors.Is(err, reveal.ErrVerticesNotRevealed),
		errors.Is(err, reveal.ErrFacesNotFormed):
		logger.Debug("action blocked", zap.Error(err))
	default:
		logger.Error("reveal action", zap.Error(err))
		app.status = "Something went wrong, see the log"
	}
}

// takeSnapshot saves the current viewport framebuffer as a PNG.
func (app *App) takeSnapshot() {
	pixels, w, h := app.viewport.ReadPixels()
	path, err := capture.SavePNG(pixels, w, h, app.cfg.Viewer.SnapshotDir, "meshanatomy")
	if err != nil {
		logger.Error("saving snapshot", zap.Error(err))
		app.snapshotMsg = "Snapshot failed: " + err.Error()
	} else {
		logger.Info("snapshot saved", zap.String("path", path))
		app.snapshotMsg = "Saved " + path
	}
	app.snapshotTime = time.Now()
}
