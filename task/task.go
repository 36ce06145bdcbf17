// Package task holds the messages exchanged with a remote worker.
package task

import (
	"fmt"
	"image"
	"time"
)

// FrameRequest asks a worker for the image of one viewport.
type FrameRequest struct {
	ID      uint
	CenterX float32
	CenterY float32
	Width   float32
	Height  float32
}

func (r *FrameRequest) String() string {
	output := "{FrameRequest "
	output += fmt.Sprintf("ID: %d ", r.ID)
	output += fmt.Sprintf("CenterX: %g ", r.CenterX)
	output += fmt.Sprintf("CenterY: %g ", r.CenterY)
	output += fmt.Sprintf("Width: %g ", r.Width)
	output += fmt.Sprintf("Height: %g}", r.Height)
	return output
}

// Frame is a rendered image. Pix is row major RGBA, four bytes per pixel.
type Frame struct {
	ID            uint
	Elapsed       time.Duration
	Height        int
	Pix           []uint8
	WorkerAddress string
	Width         int
}

func (f *Frame) String() string {
	output := "{Frame "
	output += fmt.Sprintf("ID: %d ", f.ID)
	output += fmt.Sprintf("Size: %dx%d ", f.Width, f.Height)
	output += fmt.Sprintf("Elapsed: %s ", f.Elapsed)
	output += fmt.Sprintf("Worker: %s}", f.WorkerAddress)
	return output
}

// Image wraps Pix without copying it.
func (f *Frame) Image() (*image.RGBA, error) {
	if f.Width <= 0 || f.Height <= 0 || len(f.Pix) != f.Width*f.Height*4 {
		return nil, fmt.Errorf("frame %d holds %d bytes for %dx%d pixels", f.ID, len(f.Pix), f.Width, f.Height)
	}
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}, nil
}
