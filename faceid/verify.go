package faceid

import (
	"context"
	"fmt"
	"time"

	"facevault/credential"
	"facevault/recognize"
	"facevault/session"
)

// MatchThreshold is the default Euclidean-distance cutoff below which two
// embeddings count as the same face. Lower is stricter.
const MatchThreshold = 0.6

// Result describes a successful verification.
type Result struct {
	Distance  float64
	ExpiresAt time.Time
}

// Verifier compares a freshly captured embedding against the enrolled
// template and, on a match, opens a time-boxed session.
//
// There is no retry limit and no lockout: a failed attempt changes no state
// and the caller may retry indefinitely.
type Verifier struct {
	templates *Templates
	sessions  *session.Manager
	threshold float64
	duration  time.Duration
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithThreshold sets the match distance cutoff. Default: MatchThreshold.
func WithThreshold(threshold float64) VerifierOption {
	return func(v *Verifier) { v.threshold = threshold }
}

// WithSessionDuration sets the duration of sessions opened on a match.
// Default: session.DefaultDuration.
func WithSessionDuration(d time.Duration) VerifierOption {
	return func(v *Verifier) { v.duration = d }
}

// NewVerifier creates a Verifier.
func NewVerifier(templates *Templates, sessions *session.Manager, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		templates: templates,
		sessions:  sessions,
		threshold: MatchThreshold,
		duration:  session.DefaultDuration,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify captures one embedding from the source and matches it against the
// stored template. The source is borrowed for the call.
func (v *Verifier) Verify(ctx context.Context, source recognize.FrameSource, detector recognize.Detector) (*Result, error) {
	// Check enrollment before touching the device so the caller gets routed
	// to enrollment rather than burning a capture.
	if _, err := v.templates.Load(); err != nil {
		return nil, err
	}

	frame, err := source.Capture(ctx)
	if err != nil {
		return nil, err
	}
	current, err := detector.Detect(ctx, frame)
	if err != nil {
		return nil, err
	}
	return v.Match(current)
}

// Match compares an already-extracted embedding to the stored template.
// Match iff distance < threshold; on match a new session of the configured
// duration is opened and its expiration returned. On no match nothing
// changes. The stored template is read-only here.
func (v *Verifier) Match(current recognize.Embedding) (*Result, error) {
	stored, err := v.templates.Load()
	if err != nil {
		return nil, err
	}

	distance, err := recognize.Distance(stored, current)
	if err != nil {
		return nil, err
	}
	if distance >= v.threshold {
		return nil, fmt.Errorf("%w: distance %.2f", ErrVerificationFailed, distance)
	}

	expiresAt, err := v.sessions.Open(v.duration)
	if err != nil {
		return nil, err
	}
	return &Result{Distance: distance, ExpiresAt: expiresAt}, nil
}

// Updater replaces the enrolled template after master-password re-entry.
type Updater struct {
	creds    *credential.Credentials
	enroller *Enroller
}

// NewUpdater creates an Updater.
func NewUpdater(creds *credential.Credentials, enroller *Enroller) *Updater {
	return &Updater{creds: creds, enroller: enroller}
}

// Update verifies the master password, then captures and stores a new
// reference template. A wrong password writes nothing.
func (u *Updater) Update(ctx context.Context, password string, source recognize.FrameSource, detector recognize.Detector) (recognize.Embedding, error) {
	if err := u.creds.Verify(password); err != nil {
		return nil, err
	}
	return u.enroller.Enroll(ctx, source, detector)
}

// UpdateEmbedding is the HTTP-surface variant of Update, for embeddings
// extracted by a client-side model.
func (u *Updater) UpdateEmbedding(password string, emb recognize.Embedding) error {
	if err := u.creds.Verify(password); err != nil {
		return err
	}
	return u.enroller.EnrollEmbedding(emb)
}
