// Package audit publishes bot events: messages the moderation bot consumes to
// post mod-log lines and embeds. Publishing is fire-and-forget; nothing in
// the request path depends on a consumer.
package audit

import (
	"context"
	"time"
)

// EventType discriminates bot event payloads.
type EventType string

const (
	// EventModLog asks the bot to post a line in the moderators' log channel.
	EventModLog EventType = "mod_log"
	// EventSendEmbed asks the bot to post an embed to a specific channel.
	EventSendEmbed EventType = "send_embed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// mod_log fields.
	Level   string `json:"level,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`

	// send_embed fields.
	Target      string `json:"target,omitempty"`
	Description string `json:"description,omitempty"`
	Colour      int    `json:"colour,omitempty"`
}

// ModLog builds a mod_log event.
func ModLog(level, title, message string) Event {
	return Event{Type: EventModLog, Level: level, Title: title, Message: message}
}

// SendEmbed builds a send_embed event.
func SendEmbed(target, title, description string, colour int) Event {
	return Event{Type: EventSendEmbed, Target: target, Title: title, Description: description, Colour: colour}
}

// Emitter is the narrow interface domain services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Sink receives published events. Implementations: kafka producer, in-memory
// buffer for tests and development.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
