// Package conversation holds the turn and history types shared by the agent
// and its callers.
package conversation

import (
	"time"

	"github.com/firebase/genkit/go/ai"

	"github.com/parleyhq/parley/internal/attachment"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// MetadataToolUsage is the metadata key under which assistant turns carry
// their tool-usage log ([]invocation.ToolUsage).
const MetadataToolUsage = "tool_usage"

// Turn is a single message in a conversation, immutable once constructed.
type Turn struct {
	Role        Role
	Content     string
	CreatedAt   time.Time
	Metadata    map[string]any
	Attachments []attachment.Attachment
}

// NewUserTurn builds a user turn stamped with the current time.
func NewUserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content, CreatedAt: time.Now()}
}

// Message translates the turn into the completion service's message shape.
// Attachments and metadata are deliberately not carried over.
func (t Turn) Message() *ai.Message {
	return &ai.Message{
		Role:    t.Role.modelRole(),
		Content: []*ai.Part{ai.NewTextPart(t.Content)},
	}
}

func (r Role) modelRole() ai.Role {
	switch r {
	case RoleAssistant:
		return ai.RoleModel
	case RoleSystem:
		return ai.RoleSystem
	default:
		return ai.RoleUser
	}
}
