package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/today/internal/model"
)

var (
	ErrNoMatch      = errors.New("app: no task matches")
	ErrAmbiguousRef = errors.New("app: reference matches more than one task")
	ErrEmptyTaskRef = errors.New("app: empty task reference")
)

// positionMaxLen bounds what is read as a list position. Printed short ids
// are eight hex characters and may be all digits.
const positionMaxLen = 7

// Lookup resolves ref as a 1-based position in the current list, or else as
// a prefix of a task id. A number outside the list is tried as an id prefix.
func (l *TaskList) Lookup(ref string) (model.Task, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return model.Task{}, ErrEmptyTaskRef
	}
	tasks := l.Tasks()
	if n, err := strconv.Atoi(ref); err == nil && len(ref) <= positionMaxLen && n >= 1 && n <= len(tasks) {
		return tasks[n-1], nil
	}
	var found []model.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.Identifier(), ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return model.Task{}, fmt.Errorf("%w: %q", ErrNoMatch, ref)
	case 1:
		return found[0], nil
	default:
		return model.Task{}, fmt.Errorf("%w: %q", ErrAmbiguousRef, ref)
	}
}
