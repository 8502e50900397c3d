package models

import (
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
)

type GeographicScope string

const (
	ScopeCountry     GeographicScope = "country"
	ScopeContinental GeographicScope = "continental"
	ScopeDepartments GeographicScope = "departments"
)

func ToGeographicScope(s string) (GeographicScope, error) {
	switch s {
	case string(ScopeCountry):
		return ScopeCountry, nil
	case string(ScopeContinental):
		return ScopeContinental, nil
	case string(ScopeDepartments):
		return ScopeDepartments, nil
	default:
		return "", errors.New("invalid geographic scope")
	}
}

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionSuspended SubscriptionStatus = "suspended"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// Profile holds one company account: what it does, where it operates and
// which tenders it never wants to see. CPV codes, negative keywords and
// department codes are stored comma-separated, like the upstream filters
// they feed into.
type Profile struct {
	UserID           string `gorm:"primaryKey"`
	CompanyName      string
	Specialization   string
	CPVCodes         string
	NegativeKeywords string
	Scope            GeographicScope
	Departments      string
	Subscription     SubscriptionStatus
	LastCheckedAt    time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewProfile(userID, companyName, specialization string, scope GeographicScope, departments []string) *Profile {
	return &Profile{
		UserID:         userID,
		CompanyName:    companyName,
		Specialization: specialization,
		Scope:          scope,
		Departments:    strings.Join(departments, ","),
		Subscription:   SubscriptionTrial,
	}
}

func (p *Profile) DepartmentsAsArray() []string {
	return splitCSV(p.Departments)
}

func (p *Profile) CPVCodesAsArray() []string {
	return splitCSV(p.CPVCodes)
}

func (p *Profile) NegativeKeywordsAsArray() []string {
	return splitCSV(p.NegativeKeywords)
}

// HasActiveSubscription reports whether the profile should receive fresh
// tenders. Trial counts as active.
func (p *Profile) HasActiveSubscription() bool {
	return p.Subscription == SubscriptionActive || p.Subscription == SubscriptionTrial
}

func splitCSV(value string) []string {
	if value == "" {
		return []string{}
	}

	parts := lo.Map(strings.Split(value, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	return lo.Filter(parts, func(item string, _ int) bool { return item != "" })
}
