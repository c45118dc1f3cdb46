package streaming

import "errors"

var (
	// ErrRenderAllocation is returned by Tick when the renderer cannot register a chunk mesh.
	ErrRenderAllocation = errors.New("render allocation failed")
	// ErrRenderRelease is returned by Tick and Close when releasing a chunk handle fails.
	ErrRenderRelease = errors.New("render release failed")
	// ErrClosed is returned by Tick after Close.
	ErrClosed = errors.New("streaming manager closed")
	// ErrInvalidPosition is returned by Tick for a non-finite or out-of-range observer position.
	ErrInvalidPosition = errors.New("invalid observer position")
	// ErrInvalidOptions reports a manager configuration that cannot run.
	ErrInvalidOptions = errors.New("invalid streaming options")
)
