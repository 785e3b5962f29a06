package app

import (
	"fmt"
	"path/filepath"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/meshanatomy/internal/config"
	"github.com/Faultbox/meshanatomy/internal/logger"
	"github.com/Faultbox/meshanatomy/internal/primitive"
	"github.com/Faultbox/meshanatomy/internal/topology"
	"github.com/Faultbox/meshanatomy/pkg/obj"
)

// loadResult carries an OBJ load finished off the main thread.
type loadResult struct {
	path  string
	model *obj.Model
	err   error
}

// buildShape generates the primitive geometry for the given selector index.
func buildShape(index int, vc config.ViewerConfig) topology.Geometry {
	switch index {
	case 1:
		return primitive.Cylinder(0.8, 1.8, vc.CylinderSectors)
	case 2:
		return primitive.Cone(0.9, 1.8, vc.ConeSectors)
	case 3:
		return primitive.Sphere(1.0, vc.SphereSectors, vc.SphereRings)
	default:
		return primitive.Box(1.6, 1.6, 1.6)
	}
}

// setGeometry installs new geometry in the session and refits the camera.
func (app *App) setGeometry(g topology.Geometry, name string) {
	if err := app.session.SetGeometry(g); err != nil {
		logger.Error("setting geometry", zap.String("shape", name), zap.Error(err))
		app.status = "Could not read topology from " + name
		return
	}

	topo := app.session.Topology()
	min, max := topo.Bounds()
	app.camera.FitToBounds(min, max)

	app.status = defaultStatus
	logger.Info("geometry set",
		zap.String("shape", name),
		zap.Int("vertices", app.session.VertexCount()),
		zap.Int("edges", app.session.EdgeCount()),
		zap.Int("faces", app.session.FaceCount()))
}

// LoadModel loads an OBJ file asynchronously. The result is applied on the
// main thread during the next frame.
func (app *App) LoadModel(path string) {
	go func() {
		model, err := obj.Load(path)
		// Drain a stale result so the newest load always lands.
		select {
		case <-app.loadCh:
		default:
		}
		app.loadCh <- loadResult{path: path, model: model, err: err}
	}()
}

// openModelDialog shows the native file picker. SDL window operations must
// stay on the main thread, so only the load itself runs in the goroutine.
func (app *App) openModelDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Load Model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Error("file dialog", zap.Error(err))
			}
			return
		}
		app.LoadModel(path)
	}()
}

// applyPendingLoad installs a finished OBJ load, if any. Called once per
// frame on the main thread.
func (app *App) applyPendingLoad() {
	select {
	case res := <-app.loadCh:
		if res.err != nil {
			logger.Error("loading model", zap.String("path", res.path), zap.Error(res.err))
			app.status = fmt.Sprintf("Failed to load %s", filepath.Base(res.path))
			return
		}

		name := res.model.Name
		if name == "" {
			name = filepath.Base(res.path)
		}
		app.shapeIndex = -1
		app.modelName = name
		app.setGeometry(topology.Geometry{
			Positions: res.model.Positions,
			Indices:   res.model.Indices,
		}, name)
	default:
	}
}
