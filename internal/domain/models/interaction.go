package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// InteractionStatus values mirror the statuses column of the interactions
// table. A tender with any status other than to_qualify has been triaged by
// the user and is excluded from the fresh-tender feed.
type InteractionStatus string

const (
	StatusToQualify   InteractionStatus = "to_qualify"
	StatusSaved       InteractionStatus = "saved"
	StatusBlacklisted InteractionStatus = "blacklisted"
	StatusWon         InteractionStatus = "won"
	StatusLost        InteractionStatus = "lost"
)

func ParseInteractionStatus(s string) (InteractionStatus, error) {
	st := InteractionStatus(s)
	switch st {
	case StatusToQualify, StatusSaved, StatusBlacklisted, StatusWon, StatusLost:
		return st, nil
	}
	return "", fmt.Errorf("unknown interaction status %q", s)
}

// IsTriaged reports whether the user already handled the tender one way or
// another. Blacklisting is a status, not a deletion.
func (s InteractionStatus) IsTriaged() bool {
	switch s {
	case StatusSaved, StatusBlacklisted, StatusWon, StatusLost:
		return true
	}
	return false
}

// IsWorkspace reports whether the status belongs on the workspace board.
func (s InteractionStatus) IsWorkspace() bool {
	switch s {
	case StatusSaved, StatusWon, StatusLost:
		return true
	}
	return false
}

// Interaction is the per-(user, tender) relationship row. At most one row
// exists per pair; writes go through an upsert keyed on that composite.
type Interaction struct {
	ID         int               `json:"-"`
	UserID     string            `json:"-" gorm:"uniqueIndex:idx_user_tender"`
	TenderID   string            `json:"tender_id" gorm:"uniqueIndex:idx_user_tender"`
	Status     InteractionStatus `json:"status"`
	Notes      string            `json:"notes"`
	ReminderAt *time.Time        `json:"reminder_at,omitempty"`
	Analysis   string            `json:"-" gorm:"type:text"`
	ChatLog    string            `json:"-" gorm:"type:text"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// TenderAnalysis is the persisted AI assessment of a tender for a profile.
type TenderAnalysis struct {
	Risks     []string `json:"risks"`
	Strengths []string `json:"strengths"`
	Workload  string   `json:"workload"`
	Questions []string `json:"questions"`
}

type ChatMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

func (i *Interaction) AnalysisResult() (*TenderAnalysis, error) {
	if i.Analysis == "" {
		return nil, nil
	}
	var analysis TenderAnalysis
	if err := json.Unmarshal([]byte(i.Analysis), &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode stored analysis: %w", err)
	}
	return &analysis, nil
}

func (i *Interaction) ChatMessages() ([]ChatMessage, error) {
	if i.ChatLog == "" {
		return []ChatMessage{}, nil
	}
	var messages []ChatMessage
	if err := json.Unmarshal([]byte(i.ChatLog), &messages); err != nil {
		return nil, fmt.Errorf("failed to decode stored chat log: %w", err)
	}
	return messages, nil
}
