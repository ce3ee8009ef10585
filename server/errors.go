package server

import (
	"errors"
	"fmt"
	"strings"
)

// ErrWrongNumArgs is returned when the arg count is wrong
var ErrWrongNumArgs = errors.New("wrong number of arguments")

// ErrUnknownCommand is returned when a command is not known
var ErrUnknownCommand = errors.New("unknown command")

// ErrUnknownStream is returned when a command names a stream which is not
// open
var ErrUnknownStream = errors.New("unknown stream")

// ErrStreamExists is returned when opening a stream under a name in use
var ErrStreamExists = errors.New("stream already exists")

// ErrSyntax is returned where there was a syntax error
var ErrSyntax = errors.New("syntax error")

// ErrClosed is returned by Serve after Close
var ErrClosed = errors.New("server closed")

func errUnknownCommand(args []string) error {
	return fmt.Errorf("%w '%s'", ErrUnknownCommand, args[0])
}

func errWrongNumArgs(args []string) error {
	return fmt.Errorf("%w for '%s'", ErrWrongNumArgs, strings.ToUpper(args[0]))
}

func errUnknownStream(name string) error {
	return fmt.Errorf("%w '%s'", ErrUnknownStream, name)
}
