package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Conversation roles
const (
	RoleUser   = "user"
	RoleAgent  = "agent"
	RoleSystem = "system"
)

// Conversation is the ordered message history of one session
type Conversation struct {
	SessionID string    `json:"sessionId" db:"session_id"`
	Messages  Messages  `json:"messages" db:"messages"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Message is one role-tagged conversation entry
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Messages is stored as a JSONB array
type Messages []Message

// Value implements driver.Valuer interface
func (m Messages) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// Scan implements sql.Scanner interface
func (m *Messages) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = Messages{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported messages column type %T", value)
	}
}
