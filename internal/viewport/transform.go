package viewport

import "math"

const (
	// MinZoom is 5% of original size.
	MinZoom = 0.05
	// MaxZoom is 1000% of original size.
	MaxZoom = 10.0
	// ZoomStep is the per-gesture zoom factor (20% per keypress or wheel tick).
	ZoomStep = 1.2

	// zoomEpsilon is the relative change below which a zoom request is a no-op.
	zoomEpsilon = 1e-3
)

// Transform maps image coordinates to viewport coordinates: a point p in
// image space appears at p*Zoom + Offset.
type Transform struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

// New returns the identity transform.
func New() Transform {
	return Transform{Zoom: 1.0}
}

// FitToWindow sets the zoom so the whole image fits inside the viewport with
// the given margin on each axis, never upscaling past original size, and
// centers the scaled image.
func (t *Transform) FitToWindow(imageW, imageH, viewW, viewH, margin float64) {
	if imageW <= 0 || imageH <= 0 {
		return
	}
	zoom := math.Min((viewW-margin)/imageW, (viewH-margin)/imageH)
	zoom = math.Min(zoom, 1.0)
	t.Zoom = clampZoom(zoom)
	t.OffsetX = (viewW - imageW*t.Zoom) / 2
	t.OffsetY = (viewH - imageH*t.Zoom) / 2
}

// ZoomAbout multiplies the zoom by factor, clamped to [MinZoom, MaxZoom],
// while keeping the image point projected at the pivot visually fixed.
// Returns false when the effective change is negligible and nothing was
// applied.
func (t *Transform) ZoomAbout(factor, pivotX, pivotY float64) bool {
	oldZoom := t.Zoom
	if oldZoom == 0 {
		oldZoom = 1.0
	}
	newZoom := clampZoom(oldZoom * factor)
	effective := newZoom / oldZoom
	if math.Abs(effective-1.0) < zoomEpsilon {
		return false
	}
	t.OffsetX = pivotX - (pivotX-t.OffsetX)*effective
	t.OffsetY = pivotY - (pivotY-t.OffsetY)*effective
	t.Zoom = newZoom
	return true
}

// Pan shifts the offset by the given delta. The image may move fully out of
// frame; panning is unconstrained.
func (t *Transform) Pan(dx, dy float64) {
	t.OffsetX += dx
	t.OffsetY += dy
}

// Project maps an image-space point to viewport coordinates under the
// current transform.
func (t *Transform) Project(x, y float64) (float64, float64) {
	return x*t.Zoom + t.OffsetX, y*t.Zoom + t.OffsetY
}

func clampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
