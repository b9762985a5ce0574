package tracker

import "errors"

var (
	// ErrNotFound means the referenced lesson, note, task or trash entry
	// does not exist.
	ErrNotFound = errors.New("not found")
	// ErrIndexOutOfRange means a trash position is not valid.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrValidation means required input was missing or malformed. Nothing
	// was changed.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence means the store rejected a write. In-memory state is
	// left as it was before the call.
	ErrPersistence = errors.New("persistence failed")
	// ErrVariant means the operation targets the other lesson shape, e.g.
	// adjusting flat counters on a lesson that has sub-lessons.
	ErrVariant = errors.New("wrong lesson variant")
)
