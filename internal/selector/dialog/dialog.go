// Package dialog is the native directory picker. It links the platform GUI
// toolkit, so only interactive binaries import it.
package dialog

import (
	"context"
	"errors"
	"fmt"

	sqdialog "github.com/sqweek/dialog"
)

const DefaultTitle = "Select the directory containing text files"

// Selector opens the native directory dialog. A cancelled dialog yields an
// empty path and no error.
type Selector struct {
	Title string
}

func New() *Selector { return &Selector{Title: DefaultTitle} }

func (s *Selector) Select(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	title := s.Title
	if title == "" {
		title = DefaultTitle
	}
	dir, err := sqdialog.Directory().Title(title).Browse()
	if errors.Is(err, sqdialog.ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("directory dialog: %w", err)
	}
	return dir, nil
}
