package generator

import "errors"

var (
	ErrNilObject         = errors.New("generator: nil schema object")
	ErrInvalidConfig     = errors.New("generator: invalid config")
	ErrUnsupportedConfig = errors.New("generator: unsupported config format")
)
