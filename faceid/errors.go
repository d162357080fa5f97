package faceid

import "errors"

var (
	// ErrNotEnrolled indicates no face template exists; the caller must route
	// to enrollment.
	ErrNotEnrolled = errors.New("no face template enrolled")
	// ErrVerificationFailed indicates the captured face did not match the
	// enrolled template.
	ErrVerificationFailed = errors.New("face verification failed")
)
