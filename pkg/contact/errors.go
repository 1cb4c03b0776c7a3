package contact

import "errors"

var (
	// ErrDeliveryFailed is the single failure kind of a submission. Every
	// cause (network, credentials, provider rejection) is collapsed into it.
	ErrDeliveryFailed = errors.New("contact: delivery failed")

	// ErrUnknownField is returned when a field name does not map to the form.
	ErrUnknownField = errors.New("contact: unknown field")

	// ErrSurfaceNotFound is returned when a surface ID is unknown or expired.
	ErrSurfaceNotFound = errors.New("contact: surface not found")
)
