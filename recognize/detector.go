package recognize

import (
	"context"
	"errors"
)

var (
	// ErrNoFaceDetected indicates the model found no single unambiguous face
	// in the captured frame.
	ErrNoFaceDetected = errors.New("no face detected")
	// ErrDeviceUnavailable indicates the capture device could not be opened
	// or read.
	ErrDeviceUnavailable = errors.New("capture device unavailable")
)

// Frame is one raw capture from a FrameSource, in whatever encoding the
// paired Detector understands.
type Frame []byte

// FrameSource is the capture device. It is a scoped resource: acquire it on
// entry to a capture flow and Close it on every exit path.
type FrameSource interface {
	// Capture returns the current frame. Returns ErrDeviceUnavailable if the
	// device cannot produce one.
	Capture(ctx context.Context) (Frame, error)
	// Close releases the underlying device handle.
	Close() error
}

// Detector extracts a face embedding from a frame. It has no guaranteed
// latency bound; callers pass a context.
type Detector interface {
	// Detect returns the embedding of the single face in the frame, or
	// ErrNoFaceDetected if zero or ambiguous faces are found.
	Detect(ctx context.Context, frame Frame) (Embedding, error)
}
