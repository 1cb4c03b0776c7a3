// Package app is the HTTP runtime behind folio.
//
// An App wraps a chi router. Handlers declare routes through the Router
// interface and receive a Context that bundles the request, the response
// writer, HTMX-aware rendering of templ components, and request-scoped
// logging. Handler errors flow to a single ErrorHandler.
//
//	a := app.New(
//		app.WithLogger(log),
//		app.WithMiddleware(middlewares.Recover(), middlewares.RequestID()),
//		app.WithHandlers(handlers.NewPage(store, registry)),
//		app.WithHealthChecks(app.WithReadinessCheck("content", store.Healthcheck)),
//	)
//	err := a.Run(ctx,
//		app.WithAddress(":8080"),
//		app.WithBackground(registry.Run),
//	)
//
// Run listens, serves, and runs background jobs in one errgroup. It returns
// after SIGINT, SIGTERM, or cancellation of ctx, once the server has drained
// and the shutdown hooks have run.
package app
