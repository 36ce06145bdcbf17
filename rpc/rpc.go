// Package rpc wraps net/rpc servers and clients over plain TCP or HTTP.
package rpc

import (
	"errors"
	"fmt"
	"net/rpc"

	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
)

const (
	TCP  = "tcp"
	HTTP = "http"
)

// Call failures are either ErrNotConnected, ErrConnection or a *RemoteError
// carrying the error the called method returned on the server.
var (
	ErrNotConnected = errors.New("not connected")
	ErrConnection   = errors.New("connection failure")
)

type RemoteError struct {
	Method  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s failed on the server - %s", e.Method, e.Message)
}

func callError(method string, err error) error {
	var serverErr rpc.ServerError
	if errors.As(err, &serverErr) {
		return &RemoteError{Method: method, Message: string(serverErr)}
	}
	return fmt.Errorf("%w: calling %s - %w", ErrConnection, method, err)
}

// Nothing is the request or reply of calls that carry no data.
type Nothing bool

type Server interface {
	Run() error
	Stop() error
	// Address is the address the server listens on once Run succeeded.
	Address() string
}

type Client interface {
	Connect() error
	Call(method string, request interface{}, reply interface{}) error
	Disconnect() error
}

// NewServer returns a server exposing object's exported methods over transport.
func NewServer(transport string, object interface{}, address string, name string) (Server, error) {
	switch transport {
	case TCP:
		return NewTcpServer(object, address, name), nil
	case HTTP:
		return NewHttpServer(object, address, name), nil
	}
	return nil, fmt.Errorf("%w: unknown transport %q (expected %q or %q)", misc.ErrInvalidArgument, transport, TCP, HTTP)
}

func NewClient(transport string, serverAddress string, name string) (Client, error) {
	switch transport {
	case TCP:
		return NewTcpClient(serverAddress, name), nil
	case HTTP:
		return NewHttpClient(serverAddress, name), nil
	}
	return nil, fmt.Errorf("%w: unknown transport %q (expected %q or %q)", misc.ErrInvalidArgument, transport, TCP, HTTP)
}
