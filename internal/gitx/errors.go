package gitx

import "errors"

var (
	ErrNotARepository  = errors.New("not inside a git repository")
	ErrDetachedHead    = errors.New("detached HEAD. Check out a branch first")
	ErrInvalidArgument = errors.New("invalid argument")
)
