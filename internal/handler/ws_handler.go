package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/enrollment-backend/internal/events"
	ws "github.com/stemsi/enrollment-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams enrollment events to WebSocket clients.
type WSHandler struct {
	hub      *events.Hub
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *events.Hub, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub:      hub,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// EventStream godoc
// WS /ws/v1/events?course_code=CS101
// Upgrades to WebSocket and pushes enrollment events. The optional query
// parameter sets the initial course filter; a "subscribe" action changes it.
func (h *WSHandler) EventStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("remote", c.ClientIP()).Logger()
	wsLog.Info().Msg("Event stream client connected")

	cmds := make(chan ws.RequestPayload)
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(conn, wsLog, c.Query("course_code"), cmds)
	}()

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		select {
		case cmds <- msg:
		case <-done:
		}
		if isClosed(done) {
			break
		}
	}

	close(cmds)
	<-done
}

// writeLoop owns the subscription and is the only writer on conn.
func (h *WSHandler) writeLoop(conn *websocket.Conn, log zerolog.Logger, courseCode string, cmds <-chan ws.RequestPayload) {
	// Unblock the reader when writing fails.
	defer conn.Close()

	sub := h.hub.Subscribe(courseCode)
	defer func() { sub.Close() }()

	if err := ws.WriteTyped(conn, ws.SubscribedResponse{Event: ws.EventSubscribed, CourseCode: courseCode}); err != nil {
		return
	}

	for {
		var err error
		select {
		case cmd, ok := <-cmds:
			if !ok {
				return
			}
			switch cmd.Action {
			case ws.ActionSubscribe:
				sub.Close()
				sub = h.hub.Subscribe(cmd.CourseCode)
				err = ws.WriteTyped(conn, ws.SubscribedResponse{Event: ws.EventSubscribed, CourseCode: cmd.CourseCode})
			case ws.ActionPing:
				err = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			default:
				log.Warn().Str("action", string(cmd.Action)).Msg("Unknown action")
				err = ws.WriteError(conn, "unknown action: "+string(cmd.Action))
			}

		case e, ok := <-sub.Events():
			if !ok {
				return
			}
			err = ws.WriteTyped(conn, ws.EnrollmentResponse{Event: ws.EventEnrollment, Data: e})
		}

		if err != nil {
			log.Debug().Err(err).Msg("Event stream write failed")
			return
		}
	}
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
