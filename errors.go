package legendalpha

import "errors"

var (
	// ErrOutOfBounds reports a sample coordinate outside the image.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrEmptySpan reports an inclusive span whose end precedes its start.
	ErrEmptySpan = errors.New("empty span")
	// ErrInvalidAnchors reports an anchor set that cannot define a curve.
	ErrInvalidAnchors = errors.New("invalid calibration anchors")
	// ErrEmptyCalibration reports that no scan row could be sampled.
	ErrEmptyCalibration = errors.New("calibration color table is empty")
	// ErrDecode wraps image source failures.
	ErrDecode = errors.New("image decode failed")
	// ErrEncode wraps image sink failures.
	ErrEncode = errors.New("image encode failed")
	// ErrMissingReference reports that the calibration image is absent.
	ErrMissingReference = errors.New("reference image not found")
	// ErrMissingArguments reports that no target images were given.
	ErrMissingArguments = errors.New("no target images given")
)
