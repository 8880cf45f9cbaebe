package domain

import "time"

type ConversationType string

const (
	ConversationIndividual ConversationType = "individual"
	ConversationGroup      ConversationType = "group"
)

type MessageType string

const (
	MessageSent     MessageType = "sent"
	MessageReceived MessageType = "received"
)

// Participant is the directory projection of a user taking part in a conversation.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Message is an entry of a conversation's append-only log.
type Message struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversationId"`
	SenderID       string      `json:"senderId"`
	Text           string      `json:"text"`
	Timestamp      time.Time   `json:"timestamp"`
	Type           MessageType `json:"type"`
}

// Conversation is a named thread among a set of participants.
type Conversation struct {
	ID                   string           `json:"id"`
	Type                 ConversationType `json:"type"`
	Participants         []Participant    `json:"participants"`
	Messages             []Message        `json:"messages"`
	Name                 string           `json:"name"`
	LastMessageTimestamp time.Time        `json:"lastMessageTimestamp"`
}

// HasParticipant reports whether id takes part in the conversation.
func (c *Conversation) HasParticipant(id string) bool {
	if c == nil {
		return false
	}
	for _, p := range c.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate store state.
func (c Conversation) Clone() Conversation {
	c.Participants = append([]Participant(nil), c.Participants...)
	c.Messages = append([]Message(nil), c.Messages...)
	return c
}
