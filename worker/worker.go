// Package worker serves rendered frames over net/rpc.
package worker

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"github.com/AndrewGlebovski/Mandelbrot-Set/colortable"
	"github.com/AndrewGlebovski/Mandelbrot-Set/mandelbrot"
	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/rpc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/task"
	"github.com/AndrewGlebovski/Mandelbrot-Set/viewport"
)

const heartBeatInterval = 30 * time.Second

type Worker struct {
	buffer         *image.RGBA
	done           chan struct{}
	framesRendered int
	logger         bslogger.Logger
	mandelbrot     *mandelbrot.Mandelbrot
	mutex          sync.Mutex
	stop           sync.Once
	table          *colortable.Table

	Server rpc.Server
}

func NewWorker(settings mandelbrot.Settings, table *colortable.Table, transport string, address string) (*Worker, error) {
	engine, err := mandelbrot.NewMandelbrot(settings)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, fmt.Errorf("%w: nil color table", misc.ErrInvalidArgument)
	}

	worker := &Worker{
		buffer:     engine.NewPixelBuffer(),
		done:       make(chan struct{}),
		logger:     misc.NewLogger("Worker"),
		mandelbrot: engine,
		table:      table,
	}
	worker.Server, err = rpc.NewServer(transport, worker, address, "WorkerServer")
	if err != nil {
		return nil, err
	}
	return worker, nil
}

// Address is the address clients dial once Run succeeded.
func (w *Worker) Address() string {
	return w.Server.Address()
}

func (w *Worker) Run() error {
	if err := w.Server.Run(); err != nil {
		return err
	}
	w.logger.Infof("Serving frames at %s", w.Address())
	go w.tickers()
	return nil
}

func (w *Worker) Stop() error {
	w.stop.Do(func() { close(w.done) })
	return w.Server.Stop()
}

func (w *Worker) tickers() {
	heartBeat := time.NewTicker(heartBeatInterval)
	defer heartBeat.Stop()

	for {
		select {
		case <-heartBeat.C:
			w.mutex.Lock()
			rendered := w.framesRendered
			w.mutex.Unlock()
			w.logger.Infof("Frames [Rendered: %d]", rendered)
		case <-w.done:
			return
		}
	}
}

// RenderFrame renders the viewport described by request with the worker's
// engine settings and color table.
func (w *Worker) RenderFrame(request task.FrameRequest, reply *task.Frame) error {
	settings := w.mandelbrot.Settings()
	view, err := viewport.New(request.CenterX, request.CenterY, request.Width, request.Height, settings.MoveFactor, settings.ZoomFactor)
	if err != nil {
		w.logger.Warningf("Rejecting %s: %s", request.String(), err)
		return err
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	startTime := time.Now()
	if err := w.mandelbrot.Render(view, w.table, w.buffer); err != nil {
		return err
	}

	*reply = task.Frame{
		ID:            request.ID,
		Elapsed:       time.Since(startTime),
		Height:        settings.Height,
		Pix:           append([]uint8(nil), w.buffer.Pix...),
		WorkerAddress: w.Address(),
		Width:         settings.Width,
	}
	w.framesRendered++
	w.logger.Debugf("Rendered %s", reply.String())
	return nil
}

func (w *Worker) RollCall(request rpc.Nothing, reply *bool) error {
	*reply = true
	return nil
}
