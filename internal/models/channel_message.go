package models

// ChannelMessage is a message read back from channel history
type ChannelMessage struct {
	// ID is the message id
	ID string

	// ChannelID is the channel the message lives in
	ChannelID string

	// FromSelf is true when this bot authored the message
	FromSelf bool

	// Notification is the message's first embed converted back, nil if it had none
	Notification *Notification
}
