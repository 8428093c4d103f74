package models

import "time"

// MessageType discriminates transcript entries.
type MessageType string

const (
	MessageUser MessageType = "user"
	MessageBot  MessageType = "bot"
)

// DocumentReference denotes a source document a bot message cites.
type DocumentReference struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Category DocumentCategory `json:"category"`
	Excerpt  string           `json:"excerpt"`
}

// Message is a single transcript entry. References are attached only to bot
// messages.
type Message struct {
	ID         string              `json:"id"`
	Type       MessageType         `json:"type"`
	Content    string              `json:"content"`
	Timestamp  time.Time           `json:"timestamp"`
	References []DocumentReference `json:"references,omitempty"`
}

// ChatSession is a per-user ordered chat transcript persisted as a single
// overwritable record. The owning user is encoded in the storage key, not the
// record itself.
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Archived  bool      `json:"archived"`
	UpdatedAt time.Time `json:"updatedAt"`
	Messages  []Message `json:"messages"`
}
