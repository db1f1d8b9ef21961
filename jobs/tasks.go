package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeInviteEmail delivers the invitation email.
	TaskTypeInviteEmail = "invite:email"
	// TaskTypeInviteSweep scans for invitations that expired unaccepted.
	TaskTypeInviteSweep = "invite:sweep"
)

// InviteEmailPayload describes the invitation email to send.
type InviteEmailPayload struct {
	To        string    `json:"to"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewInviteEmailTask constructs an Asynq task.
func NewInviteEmailTask(payload InviteEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeInviteEmail, data), nil
}

// HandleInviteEmailTask processes TaskTypeInviteEmail tasks.
func HandleInviteEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload InviteEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder until the SMTP relay is provisioned.
	fmt.Printf("[jobs] send invite email to %s expires=%s\n", payload.To, payload.ExpiresAt.Format(time.RFC3339))
	return nil
}

// InviteSweepPayload bounds the expiry scan window.
type InviteSweepPayload struct {
	WindowHours int `json:"window_hours"`
}

// NewInviteSweepTask constructs the periodic sweep task.
func NewInviteSweepTask(payload InviteSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeInviteSweep, data), nil
}
