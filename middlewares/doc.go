// Package middlewares provides app middleware for panic recovery, request
// IDs and access logging.
//
//	app.WithMiddleware(
//		middlewares.RequestID(),
//		middlewares.Logging(),
//		middlewares.Recover(),
//	)
//
// RequestID stores the ID through logger.WithValue, so a logger built with
// RequestIDExtractor tags every record written during the request.
package middlewares
