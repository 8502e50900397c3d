package events

import "github.com/lecompagnon/boamp-companion/internal/domain/models"

var TenderFoundTopic = "TenderFoundEvent"

// TenderFound is published by the background watcher when a fresh tender
// scores above the alert threshold for a profile.
type TenderFound struct {
	Profile models.Profile
	Tender  models.Tender
}

var ReminderDueTopic = "ReminderDueEvent"

// ReminderDue is published when an interaction's reminder date has passed.
type ReminderDue struct {
	UserID   string
	TenderID string
	Notes    string
}

var ProfileDeletedTopic = "ProfileDeletedEvent"

type ProfileDeleted struct {
	UserID string
}
