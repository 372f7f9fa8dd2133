package tag

import "errors"

var (
	ErrObjectNotFound = errors.New("tagged object not found")
	ErrTagNotAttached = errors.New("tag not attached")
)
