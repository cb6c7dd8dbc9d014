package board

// Event is the message fanned out to listing clients when the board
// changes. Delivery is best-effort and unordered; receivers re-fetch the
// listing, so duplicates are harmless.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const (
	EventThreadCreated = "thread_created"
	EventThreadUpdated = "thread_updated"
	EventReplyCreated  = "reply_created"
	EventVote          = "vote"
)

// Publisher receives change events. The write path never depends on a
// publish succeeding.
type Publisher interface {
	Publish(Event)
}

// NopPublisher drops every event. Used in tests and tools.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
