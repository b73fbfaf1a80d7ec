package chat

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one stored message of a session. A user turn and its reply share
// the same Timestamp; ID breaks the tie.
type Turn struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionID string    `gorm:"type:varchar(128);not null;index:idx_chat_session_ts,priority:1" json:"session_id"`
	Role      string    `gorm:"type:varchar(16);not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null;index:idx_chat_session_ts,priority:2" json:"timestamp"`
}

func (Turn) TableName() string { return "chat_history" }

// Reply is the assistant's answer as returned to the caller.
type Reply struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}
