package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SnapshotSyncMessage tells the worker that the stored bundle changed.
// It carries no state: the worker loads the bundle from the shared store,
// and Version lets it skip notifications older than what it already pushed.
type SnapshotSyncMessage struct {
	ID        string    `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSnapshotSyncMessage creates a message with a fresh id.
func NewSnapshotSyncMessage(version int64) *SnapshotSyncMessage {
	return &SnapshotSyncMessage{
		ID:        uuid.NewString(),
		Version:   version,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SnapshotSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SnapshotSyncMessageFromJSON decodes a message and checks its id.
func SnapshotSyncMessageFromJSON(data []byte) (*SnapshotSyncMessage, error) {
	var msg SnapshotSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(msg.ID); err != nil {
		return nil, errors.New("message id is not a uuid")
	}
	return &msg, nil
}
