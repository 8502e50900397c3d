package models

import "time"

// Tender is one BOAMP procurement notice. Tenders are ephemeral: they are
// rebuilt from the upstream feed on every fetch and never mutated in place,
// except to attach the compatibility score. Identity is the upstream web ID,
// so a refetched tender replaces the previous object wholesale.
type Tender struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Buyer       string    `json:"buyer"`
	Deadline    string    `json:"deadline"`
	URL         string    `json:"url"`
	Departments []string  `json:"departments"`
	Descriptors []string  `json:"descriptors"`
	Procedure   string    `json:"procedure"`
	Score       int       `json:"score"`
	Budget      *float64  `json:"budget,omitempty"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Lots        []Lot     `json:"lots,omitempty"`
	Contact     *Contact  `json:"contact,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Lot is one sub-contract of a tender.
type Lot struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SearchableText is the text the compatibility scorer matches keywords
// against.
func (t Tender) SearchableText() string {
	return t.Title + " " + t.Description
}
