package events

import "time"

// UserLifecycleTopic carries account lifecycle events for downstream
// provisioning (contracts, directory sync).
const UserLifecycleTopic = "btms.user.lifecycle.v1"

const (
	TypeUserCreated = "user.created"
	TypeUserDeleted = "user.deleted"
)

type UserLifecycleEvent struct {
	Type        string    `json:"type"`
	UserID      uint      `json:"userId"`
	UserUUID    string    `json:"userUuid"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	JoiningDate string    `json:"joiningDate,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}
