package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entities carried by change messages.
const (
	EntityCategory    = "category"
	EntityTransaction = "transaction"
	EntityBill        = "bill"
)

// Ops carried by change messages.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// ChangeMessage announces that one ledger record changed. Consumers reload
// the collections they need rather than trusting a payload.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeMessage stamps a message with the current time.
func NewChangeMessage(entity, op, id string) *ChangeMessage {
	return &ChangeMessage{
		Entity:    entity,
		Op:        op,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON decodes a message and rejects ones missing the
// entity or id.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Entity == "" || msg.ID == "" {
		return nil, fmt.Errorf("incomplete change message: entity=%q id=%q", msg.Entity, msg.ID)
	}
	return &msg, nil
}
