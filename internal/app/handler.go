package app

// Handler declares routes on a router.
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// A non-nil error is passed to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
