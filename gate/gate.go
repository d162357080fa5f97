// Package gate implements the page-entry checks as pure decisions. Each
// protected surface performs exactly one gate check on entry; the caller
// (CLI or HTTP shell) owns navigation, so a failed gate is a redirect
// decision, never an in-place error state.
package gate

import (
	"fmt"
	"time"

	"facevault/credential"
	"facevault/faceid"
	"facevault/session"
)

// Page identifies one of the tool's surfaces.
type Page string

const (
	PageSetup  Page = "setup"
	PageEnroll Page = "enroll"
	PageVerify Page = "verify"
	PageVault  Page = "vault"
)

// Reason explains a denied gate.
type Reason string

const (
	ReasonAlreadySetUp Reason = "master password already set"
	ReasonNoCredential Reason = "no master password set"
	ReasonEnrolled     Reason = "face already enrolled"
	ReasonNotEnrolled  Reason = "no face enrolled"
	ReasonNoSession    Reason = "no valid session"
)

// Decision is the outcome of a gate check. When denied, RedirectTo names
// the page the caller should route to.
type Decision struct {
	Granted    bool
	Reason     Reason
	RedirectTo Page
	// Remaining is set on a granted vault check.
	Remaining time.Duration
	// ExpiresAt is set on a granted vault check.
	ExpiresAt time.Time
}

// Gate evaluates page-entry decisions from the current persisted state.
type Gate struct {
	creds     *credential.Credentials
	templates *faceid.Templates
	sessions  *session.Manager
}

// New creates a Gate.
func New(creds *credential.Credentials, templates *faceid.Templates, sessions *session.Manager) *Gate {
	return &Gate{creds: creds, templates: templates, sessions: sessions}
}

// Check evaluates the entry decision for the given page.
func (g *Gate) Check(page Page) (Decision, error) {
	switch page {
	case PageSetup:
		return g.checkSetup()
	case PageEnroll:
		return g.checkEnroll()
	case PageVerify:
		return g.checkVerify()
	case PageVault:
		return g.checkVault()
	default:
		return Decision{}, fmt.Errorf("unknown page %q", page)
	}
}

// checkSetup admits only first-time users; once a master password exists the
// caller is routed on to enrollment.
func (g *Gate) checkSetup() (Decision, error) {
	exists, err := g.creds.Exists()
	if err != nil {
		return Decision{}, err
	}
	if exists {
		return Decision{Reason: ReasonAlreadySetUp, RedirectTo: PageEnroll}, nil
	}
	return Decision{Granted: true}, nil
}

func (g *Gate) checkEnroll() (Decision, error) {
	exists, err := g.creds.Exists()
	if err != nil {
		return Decision{}, err
	}
	if !exists {
		return Decision{Reason: ReasonNoCredential, RedirectTo: PageSetup}, nil
	}
	enrolled, err := g.templates.Enrolled()
	if err != nil {
		return Decision{}, err
	}
	if enrolled {
		// A template already exists: go verify instead of re-enrolling.
		return Decision{Reason: ReasonEnrolled, RedirectTo: PageVerify}, nil
	}
	return Decision{Granted: true}, nil
}

func (g *Gate) checkVerify() (Decision, error) {
	enrolled, err := g.templates.Enrolled()
	if err != nil {
		return Decision{}, err
	}
	if !enrolled {
		return Decision{Reason: ReasonNotEnrolled, RedirectTo: PageEnroll}, nil
	}
	return Decision{Granted: true}, nil
}

func (g *Gate) checkVault() (Decision, error) {
	d, err := g.sessions.Check()
	if err != nil {
		return Decision{}, err
	}
	if !d.Granted {
		return Decision{Reason: ReasonNoSession, RedirectTo: PageVerify}, nil
	}
	return Decision{
		Granted:   true,
		Remaining: d.Remaining,
		ExpiresAt: d.ExpiresAt,
	}, nil
}
