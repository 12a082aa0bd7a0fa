package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when the selected broker does not support a
// requested feature, such as delayed delivery.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Messaging is a broker-agnostic client that can publish and consume.
//
// Implementations wrap NSQ, NATS, Kafka or Google Pub/Sub.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a destination (topic/subject/queue).
type Publisher interface {
	// Publish sends a message to the destination.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a source (topic/subject/subscription).
type Consumer interface {
	// Consume blocks and delivers messages from the source to handler until
	// ctx is canceled or the broker stops the stream.
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message. With auto-ack enabled, a nil return
// acks the message and a non-nil return nacks it.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte
	// Key is used by Kafka for partitioning.
	Key []byte
	// Headers support arbitrary binary values and duplicate keys.
	Headers []Header
	// Attributes models string attributes for brokers that have them (Pub/Sub).
	Attributes map[string]string
	// OrderingKey is used by Google Pub/Sub.
	OrderingKey string
	// Delay requests deferred delivery where supported (NSQ).
	Delay time.Duration
}

// Header is a key/value pair used for message headers.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	// MessageID is the broker-assigned message ID, when exposed.
	MessageID string
	// Topic is the destination the message was published to.
	Topic string
	// Timestamp is when the broker accepted the message.
	Timestamp time.Time
}

// Message is a broker-agnostic received message.
type Message interface {
	// Body returns the message payload.
	Body() []byte
	// Key returns the message key, when applicable.
	Key() []byte
	// Headers returns message headers.
	Headers() []Header
	// Attributes returns broker string attributes.
	Attributes() map[string]string
	// ID returns the broker message ID.
	ID() string
	// Topic returns the topic or subject name when applicable.
	Topic() string
	// Timestamp returns the broker timestamp.
	Timestamp() time.Time
	// Ack acknowledges successful processing.
	Ack(ctx context.Context) error
}

// Nackable can request a message redelivery.
type Nackable interface {
	// Nack requests a message redelivery.
	Nack(ctx context.Context) error
}
