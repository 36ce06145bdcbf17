// Package viewport tracks which rectangle of the complex plane is on screen and
// translates input events into pan and zoom steps.
package viewport

import (
	"fmt"
	"math"

	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

type ZoomDirection int

const (
	In ZoomDirection = iota
	Out
)

func (z ZoomDirection) String() string {
	switch z {
	case In:
		return "In"
	case Out:
		return "Out"
	}
	return fmt.Sprintf("ZoomDirection(%d)", int(z))
}

// Viewport is the visible region of the plane: a center and an extent.
// Width and height stay positive and finite; only Pan, Zoom and Reset change them.
type Viewport struct {
	centerX float32
	centerY float32
	width   float32
	height  float32

	moveFactor float32
	zoomFactor float32

	initial [4]float32
}

// New returns a viewport centered on (centerX, centerY) spanning width x height.
// Pan moves by moveFactor of the current extent; zoom in multiplies the extent by zoomFactor.
func New(centerX, centerY, width, height, moveFactor, zoomFactor float32) (*Viewport, error) {
	if !validExtent(width) || !validExtent(height) {
		return nil, fmt.Errorf("%w: viewport extent must be positive, got %gx%g", misc.ErrInvalidArgument, width, height)
	}
	if !(moveFactor > 0) {
		return nil, fmt.Errorf("%w: move factor must be positive, got %g", misc.ErrInvalidArgument, moveFactor)
	}
	if !(zoomFactor > 0 && zoomFactor < 1) {
		return nil, fmt.Errorf("%w: zoom factor must be in (0,1), got %g", misc.ErrInvalidArgument, zoomFactor)
	}

	return &Viewport{
		centerX:    centerX,
		centerY:    centerY,
		width:      width,
		height:     height,
		moveFactor: moveFactor,
		zoomFactor: zoomFactor,
		initial:    [4]float32{centerX, centerY, width, height},
	}, nil
}

func (v *Viewport) CenterX() float32 { return v.centerX }
func (v *Viewport) CenterY() float32 { return v.centerY }
func (v *Viewport) Width() float32   { return v.width }
func (v *Viewport) Height() float32  { return v.height }

// Pan shifts the center by a fraction of the current extent. Unknown directions are ignored.
func (v *Viewport) Pan(direction Direction) {
	switch direction {
	case Up:
		v.centerY -= v.moveFactor * v.height
	case Down:
		v.centerY += v.moveFactor * v.height
	case Left:
		v.centerX -= v.moveFactor * v.width
	case Right:
		v.centerX += v.moveFactor * v.width
	}
}

// Smallest normal float32. Extents below it lose precision on the way to zero.
const minExtent = 0x1p-126

// Zoom scales the extent around the current center and reports whether it
// changed. A step that would leave the normal float32 range is skipped, as are
// unknown directions.
func (v *Viewport) Zoom(direction ZoomDirection) bool {
	var width, height float32
	switch direction {
	case In:
		width, height = v.width*v.zoomFactor, v.height*v.zoomFactor
	case Out:
		width, height = v.width/v.zoomFactor, v.height/v.zoomFactor
	default:
		return false
	}
	if !validExtent(width) || !validExtent(height) {
		return false
	}
	v.width, v.height = width, height
	return true
}

func validExtent(e float32) bool {
	return e >= minExtent && e <= math.MaxFloat32
}

// Reset restores the viewport New was called with.
func (v *Viewport) Reset() {
	v.centerX, v.centerY, v.width, v.height = v.initial[0], v.initial[1], v.initial[2], v.initial[3]
}

func (v *Viewport) String() string {
	return fmt.Sprintf("{Viewport Center: (%g, %g) Extent: %gx%g}", v.centerX, v.centerY, v.width, v.height)
}
