// Package generator renders class declarations from schema objects.
package generator

import (
	"github.com/oy3o/objgen/schema"
	"go.uber.org/zap"
)

// Generator turns one schema object into the text of one source file.
type Generator interface {
	Generate(obj *schema.Object) ([]byte, error)
	Language() string
	FileExtension() string
}

type options struct {
	log *zap.Logger
}

type Option func(*options)

// WithLogger sets the logger. Generators are silent by default.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func newOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
