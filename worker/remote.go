package worker

import (
	"fmt"

	"github.com/AndrewGlebovski/Mandelbrot-Set/rpc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/task"
)

// Remote is the client side of a Worker.
type Remote struct {
	client rpc.Client
}

// Dial connects to the worker at address and checks that it answers roll call.
func Dial(transport string, address string) (*Remote, error) {
	client, err := rpc.NewClient(transport, address, fmt.Sprintf("WorkerClient %s", address))
	if err != nil {
		return nil, err
	}
	if err := client.Connect(); err != nil {
		return nil, err
	}

	var present bool
	if err := client.Call("Worker.RollCall", rpc.Nothing(false), &present); err != nil {
		_ = client.Disconnect()
		return nil, fmt.Errorf("worker at address %s missed roll call - %w", address, err)
	}
	if !present {
		_ = client.Disconnect()
		return nil, fmt.Errorf("worker at address %s missed roll call", address)
	}
	return &Remote{client: client}, nil
}

// RenderFrame asks the worker for a frame. A rejected or failed render is an
// *rpc.RemoteError; a lost worker matches rpc.ErrConnection.
func (r *Remote) RenderFrame(request task.FrameRequest) (*task.Frame, error) {
	var frame task.Frame
	if err := r.client.Call("Worker.RenderFrame", request, &frame); err != nil {
		return nil, err
	}
	return &frame, nil
}

func (r *Remote) Close() error {
	return r.client.Disconnect()
}
