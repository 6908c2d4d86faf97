package entity

import "time"

const (
	ChatCapacity = 500
	ChatHistory  = 200

	SystemSender = "system"
)

type ChatMessage struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatLog keeps the most recent messages up to its capacity.
type ChatLog struct {
	capacity int
	messages []ChatMessage
}

func NewChatLog(capacity int) *ChatLog {
	if capacity <= 0 {
		capacity = ChatCapacity
	}

	return &ChatLog{
		capacity: capacity,
		messages: make([]ChatMessage, 0, capacity),
	}
}

func (that *ChatLog) Append(msg ChatMessage) {
	if len(that.messages) == that.capacity {
		copy(that.messages, that.messages[1:])
		that.messages = that.messages[:len(that.messages)-1]
	}
	that.messages = append(that.messages, msg)
}

// Last returns a copy of the newest n messages, oldest first.
func (that *ChatLog) Last(n int) []ChatMessage {
	if n > len(that.messages) {
		n = len(that.messages)
	}
	if n < 0 {
		n = 0
	}

	out := make([]ChatMessage, n)
	copy(out, that.messages[len(that.messages)-n:])
	return out
}

func (that *ChatLog) Len() int {
	return len(that.messages)
}
