package pager

import "context"

// Message is the part of a chat message the pager reads.
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	Content   string
}

// Reaction is a reaction-added event. A nil Message means the host delivered
// a partial event and the message has to be fetched.
type Reaction struct {
	ChannelID string
	MessageID string
	UserID    string
	Emoji     string
	Message   *Message
}

// Attachment is a file sent with a message.
type Attachment struct {
	Name string
	Data []byte
}

// Outgoing is a message to post.
type Outgoing struct {
	Content    string
	Attachment *Attachment
}

// Host is the chat platform the pager posts to.
type Host interface {
	SelfID() string
	FetchMessage(ctx context.Context, channelID, messageID string) (Message, error)
	Send(ctx context.Context, channelID string, out Outgoing) (Message, error)
	// Edit replaces the message text and leaves attachments untouched.
	Edit(ctx context.Context, channelID, messageID, content string) error
	React(ctx context.Context, channelID, messageID, emoji string) error
}
