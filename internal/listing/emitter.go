package listing

import (
	"context"
	"encoding/json"
	"sync"

	"listing-search-workers/internal/common/logger"
)

// EventType discriminates notification events.
type EventType string

const (
	EventStatus EventType = "status"
	EventError  EventType = "error"
	EventResult EventType = "result"
)

// EventData is the payload of every event kind.
type EventData struct {
	Description string `json:"description"`
	Done        bool   `json:"done"`
	Hidden      bool   `json:"hidden"`
}

// Event is one notification emitted during a search.
type Event struct {
	Type EventType `json:"type"`
	Data EventData `json:"data"`
}

// StatusEvent reports progress. Status events are not terminal unless done is set.
func StatusEvent(description string, done bool) Event {
	return Event{Type: EventStatus, Data: EventData{Description: description, Done: done}}
}

// ErrorEvent carries the message returned to the caller on failure.
func ErrorEvent(description string) Event {
	return Event{Type: EventError, Data: EventData{Description: description, Done: true}}
}

// ResultEvent carries the full search output.
func ResultEvent(content string) Event {
	return Event{Type: EventResult, Data: EventData{Description: content, Done: true}}
}

// Emitter receives search notifications. Implementations must not block for long;
// delivery failures are theirs to handle.
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, event Event)

func (f EmitterFunc) Emit(ctx context.Context, event Event) {
	f(ctx, event)
}

// NopEmitter drops every event.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, Event) {}

// LogEmitter writes events to a logger.
type LogEmitter struct {
	logger logger.Logger
}

func NewLogEmitter(log logger.Logger) *LogEmitter {
	return &LogEmitter{logger: log.WithFields(map[string]interface{}{"component": "listing-events"})}
}

func (e *LogEmitter) Emit(_ context.Context, event Event) {
	fields := map[string]interface{}{
		"type": string(event.Type),
		"done": event.Data.Done,
	}
	switch event.Type {
	case EventError:
		fields["description"] = event.Data.Description
		e.logger.Warn("listing search event", fields)
	case EventResult:
		fields["bytes"] = len(event.Data.Description)
		e.logger.Info("listing search event", fields)
	default:
		fields["description"] = event.Data.Description
		e.logger.Debug("listing search event", fields)
	}
}

// RecordingEmitter keeps every event in order. Safe for concurrent use.
type RecordingEmitter struct {
	mu     sync.Mutex
	events []Event
}

func (r *RecordingEmitter) Emit(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *RecordingEmitter) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// MultiEmitter fans every event out to each emitter in order. Nil entries are skipped.
type MultiEmitter []Emitter

func (m MultiEmitter) Emit(ctx context.Context, event Event) {
	for _, e := range m {
		if e != nil {
			e.Emit(ctx, event)
		}
	}
}

// MessagePublisher is the subset of the SNS client used for notifications.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, topicARN, subject, message string, attrs map[string]string) (string, error)
}

// maxNotificationBytes keeps published messages under the SNS 256 KiB payload limit.
const maxNotificationBytes = 240 * 1024

// SNSEmitter publishes terminal result and error events to a topic. Status events are dropped.
type SNSEmitter struct {
	publisher MessagePublisher
	topicARN  string
	logger    logger.Logger
}

func NewSNSEmitter(publisher MessagePublisher, topicARN string, log logger.Logger) *SNSEmitter {
	return &SNSEmitter{
		publisher: publisher,
		topicARN:  topicARN,
		logger:    log.WithFields(map[string]interface{}{"component": "listing-sns"}),
	}
}

func (e *SNSEmitter) Emit(ctx context.Context, event Event) {
	if event.Type == EventStatus {
		return
	}

	if len(event.Data.Description) > maxNotificationBytes {
		event.Data.Description = event.Data.Description[:maxNotificationBytes]
	}
	body, err := json.Marshal(event)
	if err != nil {
		e.logger.Error("failed to encode listing event", map[string]interface{}{"error": err.Error()})
		return
	}

	attrs := map[string]string{"eventType": string(event.Type)}
	if id, ok := SearchIDFromContext(ctx); ok {
		attrs["searchId"] = id
	}

	msgID, err := e.publisher.PublishMessage(ctx, e.topicARN, "listing-search "+string(event.Type), string(body), attrs)
	if err != nil {
		e.logger.Error("failed to publish listing event", map[string]interface{}{
			"type":  string(event.Type),
			"error": err.Error(),
		})
		return
	}
	e.logger.Debug("published listing event", map[string]interface{}{
		"type":      string(event.Type),
		"messageId": msgID,
	})
}

type searchIDKey struct{}

// WithSearchID tags ctx with the id of the search it belongs to.
func WithSearchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, searchIDKey{}, id)
}

// SearchIDFromContext returns the search id set by WithSearchID.
func SearchIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(searchIDKey{}).(string)
	return id, ok && id != ""
}
