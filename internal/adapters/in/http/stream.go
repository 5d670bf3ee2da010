package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/realtime"

	"github.com/labstack/echo/v4"
)

// Stream handles GET /api/v1/stream. It holds the response open as a
// server-sent-events stream registered on the realtime hub until the client
// disconnects. An optional userId query parameter scopes the stream to that
// user's events; without it the stream receives everything (admin view).
func (s *Server) Stream(ctx echo.Context) error {
	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set("Cache-Control", "no-cache")
	response.Header().Set("Connection", "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	connID := kernel.NewUUID().String()
	s.hub.Register(connID, ctx.QueryParam("userId"), newSSEConn(response))
	defer s.hub.Unregister(connID)

	<-ctx.Request().Context().Done()
	return nil
}

// sseConn adapts an echo response to the hub's connection contract. The hub
// broadcasts from other goroutines, so writes are serialized here.
type sseConn struct {
	mu       sync.Mutex
	response *echo.Response
}

func newSSEConn(response *echo.Response) *sseConn {
	return &sseConn{response: response}
}

func (c *sseConn) Write(event realtime.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintf(c.response, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return err
	}
	c.response.Flush()
	return nil
}
