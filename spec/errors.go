package spec

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrSkillNotFound   = errors.New("skill not found")
	ErrNoSources       = errors.New("no skill sources")
	ErrNotLoaded       = errors.New("registry not loaded")
	ErrAlreadyLoaded   = errors.New("registry already loaded")
	ErrValidation      = errors.New("skill validation failed")
)
