package tui

import (
	"geodraw/internal/globe"
	"geodraw/internal/scene"
)

// host is the viewer the editor talks to: the globe camera for projection,
// the scene store for entities, plus the two interaction toggles.
type host struct {
	*globe.Camera
	*scene.Store

	cameraRotation bool
	crosshair      bool
}

func newHost(cam *globe.Camera, pickRadius float64) *host {
	return &host{
		Camera:         cam,
		Store:          scene.New(cam, pickRadius),
		cameraRotation: true,
	}
}

func (h *host) SetCameraRotationEnabled(enabled bool) { h.cameraRotation = enabled }

func (h *host) SetCrosshair(enabled bool) { h.crosshair = enabled }
