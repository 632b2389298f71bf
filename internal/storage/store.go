// Package storage persists the whole ordered task collection.
package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/today/internal/model"
)

var ErrCorrupt = errors.New("storage: corrupt task data")

// Store loads and saves the complete collection. Save replaces whatever was
// stored before; Load returns tasks in the order they were saved.
type Store interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
}

func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}
