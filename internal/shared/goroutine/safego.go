// Package goroutine contains panic-isolation helpers for background work.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"shelfwatch/internal/shared/logger"
)

// PanicError is returned by Run when fn panicked.
type PanicError struct {
	Name  string
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Name, e.Value)
}

// Run calls fn and converts a panic into a *PanicError so one failing unit
// of work cannot take down its siblings.
func Run(log logger.Interface, name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", stack,
			)
			err = &PanicError{Name: name, Value: r, Stack: stack}
		}
	}()
	return fn()
}

// SafeGo launches fn in a goroutine with panic recovery.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		_ = Run(log, name, func() error {
			fn()
			return nil
		})
	}()
}
