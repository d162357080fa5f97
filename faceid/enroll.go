package faceid

import (
	"context"

	"facevault/recognize"
)

// Enroller captures one reference face embedding and persists it.
type Enroller struct {
	templates *Templates
}

// NewEnroller creates an Enroller over the given template store.
func NewEnroller(templates *Templates) *Enroller {
	return &Enroller{templates: templates}
}

// Enroll extracts exactly one face embedding from the source's current frame
// and stores it, overwriting any prior template. When no face is found
// nothing is written and the caller may retry. Enrollment alone never grants
// vault access; the caller routes to verification next.
//
// The source is borrowed for the call; its lifecycle stays with the caller.
func (e *Enroller) Enroll(ctx context.Context, source recognize.FrameSource, detector recognize.Detector) (recognize.Embedding, error) {
	frame, err := source.Capture(ctx)
	if err != nil {
		return nil, err
	}
	emb, err := detector.Detect(ctx, frame)
	if err != nil {
		return nil, err
	}
	if err := e.templates.Save(emb); err != nil {
		return nil, err
	}
	return emb, nil
}

// EnrollEmbedding stores an embedding already extracted elsewhere (e.g. by a
// client-side model talking to the HTTP surface).
func (e *Enroller) EnrollEmbedding(emb recognize.Embedding) error {
	if len(emb) == 0 {
		return recognize.ErrNoFaceDetected
	}
	return e.templates.Save(emb)
}
