package plug

import "errors"

// Framework errors.
var (
	// ErrAttachmentNotFound is returned when an attachment lookup by
	// name fails.
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrImmutableName is returned when a plain field write targets a
	// name already owned by an attachment.
	ErrImmutableName = errors.New("name is owned by an attachment")

	// ErrUnknownOperation is returned when resolving an operation the
	// host does not provide.
	ErrUnknownOperation = errors.New("unknown operation")
)
