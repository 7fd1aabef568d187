// Package crm manages the staff, task and meeting collections around the
// client pipeline.
package crm

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrEmployeeHasWork  = errors.New("employee still owns clients")
	ErrTaskNotFound     = errors.New("task not found")
	ErrMeetingNotFound  = errors.New("meeting not found")
)

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func remove[T any](items []T, i int) []T {
	return append(items[:i], items[i+1:]...)
}
