package store

import "testing"

func TestRemoveLastIfUser(t *testing.T) {
	tests := []struct {
		name     string
		setup    []Message
		want     bool
		wantLen  int
		wantLast string
	}{
		{
			name:    "empty history",
			setup:   nil,
			want:    false,
			wantLen: 0,
		},
		{
			name: "trailing user message removed",
			setup: []Message{
				{Role: RoleUser, Content: "hi"},
			},
			want:    true,
			wantLen: 0,
		},
		{
			name: "trailing assistant message kept",
			setup: []Message{
				{Role: RoleUser, Content: "hi"},
				{Role: RoleAssistant, Content: "hello"},
			},
			want:     false,
			wantLen:  2,
			wantLast: RoleAssistant,
		},
		{
			name: "only the last message is considered",
			setup: []Message{
				{Role: RoleUser, Content: "first"},
				{Role: RoleAssistant, Content: "reply"},
				{Role: RoleUser, Content: "second"},
			},
			want:     true,
			wantLen:  2,
			wantLast: RoleAssistant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession("id", "llama3", "")
			for _, msg := range tt.setup {
				session.Append(msg.Role, msg.Content)
			}

			if got := session.RemoveLastIfUser(); got != tt.want {
				t.Errorf("RemoveLastIfUser = %v, want %v", got, tt.want)
			}
			if session.Len() != tt.wantLen {
				t.Errorf("Len = %d, want %d", session.Len(), tt.wantLen)
			}
			if tt.wantLast != "" {
				history := session.Snapshot()
				if history[len(history)-1].Role != tt.wantLast {
					t.Errorf("last role = %q, want %q", history[len(history)-1].Role, tt.wantLast)
				}
			}
		})
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	session := NewSession("id", "llama3", "")
	session.Append(RoleUser, "original")

	snap := session.Snapshot()
	snap[0].Content = "mutated"

	if got := session.Snapshot()[0].Content; got != "original" {
		t.Errorf("session history mutated through snapshot: %q", got)
	}
}

func TestClearMessagesKeepsShell(t *testing.T) {
	session := NewSession("id", "llama3", "Be terse.")
	session.Append(RoleUser, "hi")
	session.Append(RoleAssistant, "hello")

	session.ClearMessages()

	if session.Len() != 0 {
		t.Errorf("Len = %d, want 0", session.Len())
	}
	if session.Model != "llama3" || session.SystemPrompt != "Be terse." {
		t.Errorf("shell lost after clear: model=%q prompt=%q", session.Model, session.SystemPrompt)
	}
}
