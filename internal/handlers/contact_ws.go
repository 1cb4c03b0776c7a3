package handlers

import (
	"bytes"
	"log/slog"

	"github.com/coder/websocket"

	"github.com/folio-dev/folio/internal/app"
	"github.com/folio-dev/folio/internal/views"
)

// watch upgrades to a websocket and pushes the rendered modal body on every
// state change of the surface. Messages are HTML fragments whose root id
// matches views.ModalBodyID, which the htmx ws extension swaps in place.
func (h *ContactHandler) watch(c app.Context) error {
	id := c.Param("id")
	sub := submission(c)

	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		c.LogWarn("websocket upgrade failed", slog.Any("error", err))
		return nil
	}
	defer conn.CloseNow()

	// Client messages are ignored; CloseRead ends ctx when the peer leaves.
	ctx := conn.CloseRead(c.Request().Context())

	var buf bytes.Buffer
	for snap := range sub.Watch(ctx) {
		buf.Reset()
		if err := views.ModalBody(id, snap, nil).Render(ctx, &buf); err != nil {
			c.LogError("render modal body", slog.Any("error", err))
			_ = conn.Close(websocket.StatusInternalError, "render failed")
			return nil
		}
		if err := conn.Write(ctx, websocket.MessageText, buf.Bytes()); err != nil {
			if ctx.Err() == nil {
				c.LogDebug("websocket write failed", slog.Any("error", err))
			}
			return nil
		}
	}

	_ = conn.Close(websocket.StatusNormalClosure, "")
	return nil
}
