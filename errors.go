package kpack

import "errors"

var (
	// ErrOverflow is returned when a value lies outside its slot range, a
	// word lies outside the legal packed range, or a size exceeds what the
	// word type can hold.
	ErrOverflow = errors.New("overflow")

	// ErrCapacityExceeded is returned by Push once a packer already holds
	// its declared number of values.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrExhausted is returned by Pop once an unpacker has yielded its
	// declared number of values.
	ErrExhausted = errors.New("exhausted")

	// ErrIncomplete is returned by Get before the declared number of
	// values has been pushed.
	ErrIncomplete = errors.New("incomplete")

	// ErrInvalidArgument is returned for degenerate inputs, such as a
	// nonzero word claiming to hold zero values.
	ErrInvalidArgument = errors.New("invalid argument")
)
