package websocket

import "github.com/stemsi/enrollment-backend/internal/events"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionSubscribe Action = "subscribe"
	ActionPing      Action = "ping"
)

// RequestPayload is every message a client may send.
type RequestPayload struct {
	Action Action `json:"action"`
	// CourseCode narrows a subscription to one course; empty means all courses.
	CourseCode string `json:"course_code,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError      Event = "error"
	EventSubscribed Event = "subscribed"
	EventPong       Event = "pong"
	EventEnrollment Event = "enrollment"
)

type SubscribedResponse struct {
	Event      Event  `json:"event"`
	CourseCode string `json:"course_code"`
}

type EnrollmentResponse struct {
	Event Event        `json:"event"`
	Data  events.Event `json:"data"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
