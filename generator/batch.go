package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/oy3o/objgen/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one schema object in a batch.
type Result struct {
	Name     string
	Filename string
	Output   []byte
	Err      error
}

// GenerateAll renders every object concurrently. Results keep the order of
// objs and a failure only affects its own entry. Objects sharing a name or
// referencing an object missing from the batch fail without being rendered.
// The returned error is non-nil only when ctx ends before the batch does.
func (g *HeaderGenerator) GenerateAll(ctx context.Context, objs []*schema.Object) ([]Result, error) {
	results := make([]Result, len(objs))
	batchErrs := checkBatch(objs)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.limit())

	for i, obj := range objs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := Result{}
			if obj != nil {
				res.Name = obj.Name
				res.Filename = obj.Name + g.FileExtension()
			}
			if res.Err = batchErrs[i]; res.Err == nil {
				res.Output, res.Err = g.Generate(obj)
			}
			if res.Err != nil {
				g.log.Error("header generation failed",
					zap.String("object", res.Name),
					zap.Error(res.Err))
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkBatch registers the valid objects of a batch and returns, per
// object, its duplicate name and unresolved reference errors. Objects that
// fail validation are left for Generate to report.
func checkBatch(objs []*schema.Object) []error {
	errs := make([][]error, len(objs))
	reg := schema.NewRegistry()
	valid := make([]bool, len(objs))
	dups := make(map[string]bool)
	for i, obj := range objs {
		if obj == nil {
			continue
		}
		err := reg.Add(obj)
		switch {
		case err == nil:
			valid[i] = true
		case errors.Is(err, schema.ErrDuplicateObject):
			valid[i] = true
			dups[obj.Name] = true
		}
	}
	for i, obj := range objs {
		if !valid[i] {
			continue
		}
		if dups[obj.Name] {
			errs[i] = append(errs[i], fmt.Errorf("%w: %s", schema.ErrDuplicateObject, obj.Name))
		}
		if err := reg.ResolveObject(obj); err != nil {
			errs[i] = append(errs[i], err)
		}
	}

	out := make([]error, len(objs))
	for i := range errs {
		out[i] = errors.Join(errs[i]...)
	}
	return out
}

// Failed joins the errors of every failed result.
func Failed(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
