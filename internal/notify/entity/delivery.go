package entity

import "time"

type DeliveryStatus int16

const (
	DeliveryStatusUnknown DeliveryStatus = 0
	DeliveryStatusQueued  DeliveryStatus = 1
	DeliveryStatusSent    DeliveryStatus = 2
	DeliveryStatusFailed  DeliveryStatus = 3
)

func (s DeliveryStatus) String() string {
	switch s {
	case DeliveryStatusQueued:
		return "queued"
	case DeliveryStatusSent:
		return "sent"
	case DeliveryStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CreateDeliveryLog records an outbound email before the send is attempted.
type CreateDeliveryLog struct {
	ID        int64
	Email     string
	Kind      string
	Status    DeliveryStatus
	CreatedAt time.Time
}

// UpdateDeliveryLog moves a delivery log to its final status once the send
// attempt has settled.
type UpdateDeliveryLog struct {
	ID               int64
	Status           DeliveryStatus
	ProviderResponse string
	NextRetryAt      *time.Time
	UpdatedAt        time.Time
}
