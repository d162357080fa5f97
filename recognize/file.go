package recognize

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource is a FrameSource that reads frames from a file on disk. It
// stands in for a live camera in CLI use: the file holds the most recent
// capture, in the encoding the paired Detector expects.
type FileSource struct {
	path   string
	closed bool
}

var _ FrameSource = (*FileSource)(nil)

// NewFileSource opens a frame source over the given path. The file must
// exist and be readable, otherwise ErrDeviceUnavailable is returned.
func NewFileSource(path string) (*FileSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	return &FileSource{path: path}, nil
}

func (s *FileSource) Capture(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.closed {
		return nil, fmt.Errorf("%w: source closed", ErrDeviceUnavailable)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	return Frame(data), nil
}

func (s *FileSource) Close() error {
	s.closed = true
	return nil
}

// VectorDetector interprets frames as the serialized output of the external
// face model: a JSON number array for a detected face. Frames that don't
// decode to a non-empty vector are treated as containing no face.
type VectorDetector struct{}

var _ Detector = VectorDetector{}

func (VectorDetector) Detect(ctx context.Context, frame Frame) (Embedding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var v []float64
	if err := json.Unmarshal(frame, &v); err != nil {
		return nil, ErrNoFaceDetected
	}
	if len(v) == 0 {
		return nil, ErrNoFaceDetected
	}
	return Embedding(v), nil
}

// StaticSource is a FrameSource that returns a fixed frame, or a fixed
// error. Useful for tests and demos.
type StaticSource struct {
	Frame Frame
	Err   error
}

var _ FrameSource = (*StaticSource)(nil)

func (s *StaticSource) Capture(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Frame, nil
}

func (s *StaticSource) Close() error { return nil }
