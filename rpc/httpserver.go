package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/rpc"
	"sync"

	"github.com/BrugadaSyndrome/bslogger"

	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
)

type HttpServer struct {
	address string
	mux     *http.ServeMux
	object  interface{}
	server  *http.Server

	Logger bslogger.Logger
	Name   string
	WG     *sync.WaitGroup
}

func NewHttpServer(object interface{}, address string, name string) *HttpServer {
	return &HttpServer{
		address: address,
		mux:     http.NewServeMux(),
		object:  object,
		Logger:  misc.NewLogger(name),
		Name:    name,
		WG:      &sync.WaitGroup{},
	}
}

func (hs *HttpServer) Address() string {
	return hs.address
}

func (hs *HttpServer) Run() error {
	handler := rpc.NewServer()
	err := handler.Register(hs.object)
	if err != nil {
		hs.Logger.Error("Registering object")
		return err
	}

	// Each server gets its own mux so several can run in one process
	hs.mux.Handle(rpc.DefaultRPCPath, handler)

	listener, err := net.Listen("tcp", hs.address)
	if err != nil {
		hs.Logger.Errorf("Listening at address %s", hs.address)
		return err
	}
	hs.address = listener.Addr().String()

	// Serve until Stop shuts the server down
	hs.server = &http.Server{Addr: hs.address, Handler: hs.mux}
	hs.WG.Add(1)
	go func() {
		defer hs.WG.Done()
		if err := hs.server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			hs.Logger.Errorf("Error serving at address %s - %s", hs.address, err)
		}
	}()

	hs.Logger.Infof("Running server at address %s", hs.address)
	return nil
}

func (hs *HttpServer) Stop() error {
	if hs.server == nil {
		return fmt.Errorf("server at address %s is not running", hs.address)
	}

	if err := hs.server.Shutdown(context.Background()); err != nil {
		hs.Logger.Errorf("Shutting down server at address %s", hs.address)
		return err
	}
	hs.Logger.Infof("Shutting down server at address %s", hs.address)
	hs.WG.Wait()
	return nil
}
