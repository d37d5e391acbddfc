package realtime

import "nagarrakshak/backend/internal/models"

// Client is the interface for a realtime subscriber connection. It abstracts
// the underlying transport so the hub can manage connections uniformly.
type Client interface {
	// GetSessionID returns the unique identifier of this connection.
	GetSessionID() string
	// GetSubscription returns the client's current change-event subscription.
	GetSubscription() models.Subscription
	// SetSubscription replaces the client's subscription. Called when the
	// client sends a subscribe frame.
	SetSubscription(models.Subscription)

	// GetSendChannel returns the channel the hub delivers matching events to.
	GetSendChannel() chan<- models.ChangeEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and channels.
	Close()
}
