package cli

import (
	"errors"
	"fmt"

	"kanban-cli/internal/store"
)

var errNoBoard = errors.New("no current board; run `kanban boards use <board-id>` (or pass --board)")

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

// storeErr maps store.ErrNotFound onto the CLI's notFoundError so messages stay uniform.
func storeErr(kind, id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound(kind, id)
	}
	return err
}
