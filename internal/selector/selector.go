// Package selector resolves the input directory for a run.
package selector

import "context"

// Selector returns the directory to read from. An empty path with a nil
// error means the user declined to choose one.
type Selector interface {
	Select(ctx context.Context) (string, error)
}

// Static always returns the same directory.
type Static string

func (s Static) Select(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(s), nil
}

// Func adapts a plain function to Selector.
type Func func(ctx context.Context) (string, error)

func (f Func) Select(ctx context.Context) (string, error) { return f(ctx) }
