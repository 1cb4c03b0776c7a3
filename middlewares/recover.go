package middlewares

import (
	"runtime"

	"github.com/folio-dev/folio/internal/app"
)

// DefaultStackSize is the maximum stack trace size in bytes.
const DefaultStackSize = 4096

// Recover turns a handler panic into a *PanicError for the app's error
// handler. The panic and its stack are logged at Error.
func Recover() app.Middleware {
	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(c app.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := make([]byte, DefaultStackSize)
					stack = stack[:runtime.Stack(stack, false)]

					c.LogError("panic recovered", "panic", r, "stack", string(stack))
					err = &PanicError{Value: r, Stack: stack}
				}
			}()
			return next(c)
		}
	}
}
