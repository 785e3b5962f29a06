package app

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// renderViewport renders the 3D scene offscreen and displays it as an
// ImGui image, with drag-orbit and wheel-zoom while hovered.
func (app *App) renderViewport() {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}

	w, h := app.viewport.Size()
	if int32(avail.X) != w || int32(avail.Y) != h {
		app.viewport.Resize(int32(avail.X), int32(avail.Y))
	}

	textureID := app.viewport.Render(app.scene, app.camera)

	// Flip V: the framebuffer texture has OpenGL's bottom-up rows.
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*texRef,
		avail,
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.07, 0.08, 0.1, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.camera.HandleDrag(mousePos.X-app.lastMouse.X, mousePos.Y-app.lastMouse.Y)
		}
		app.lastMouse = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.camera.HandleZoom(wheel)
		}
	}
}
