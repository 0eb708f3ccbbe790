package core

import (
	"context"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
)

type (
	// ThresholdPolicy quorum parameters of an organization
	ThresholdPolicy struct {
		ProposalThreshold      int64 `json:"proposal_threshold"`
		ApprovalThreshold      int64 `json:"approval_threshold"`
		ParticipationThreshold int64 `json:"participation_threshold"`
	}

	// Organization dao info
	Organization struct {
		ID          int64           `sql:"PRIMARY_KEY" json:"id,omitempty"`
		CreatedAt   time.Time       `json:"created_at,omitempty"`
		UpdatedAt   time.Time       `json:"updated_at,omitempty"`
		Version     int64           `json:"version,omitempty"`
		Address     string          `sql:"size:64" json:"address,omitempty"`
		Name        string          `sql:"size:128" json:"name,omitempty"`
		Description string          `sql:"size:1024" json:"description,omitempty"`
		Members     pq.StringArray  `sql:"type:text" json:"members,omitempty"`
		Policy      ThresholdPolicy `gorm:"embedded;embedded_prefix:policy_" json:"policy"`
	}

	// OrganizationUpdate fields left empty keep their current value
	OrganizationUpdate struct {
		Address     string           `json:"address,omitempty"`
		Name        string           `json:"name,omitempty"`
		Description string           `json:"description,omitempty"`
		Members     []string         `json:"members,omitempty"`
		Policy      *ThresholdPolicy `json:"policy,omitempty"`
	}

	// Member roster mutation request
	Member struct {
		OrgID   string `json:"org_id,omitempty"`
		Account string `json:"account,omitempty"`
	}

	// OrganizationStore organization store interface. A nil tx reads
	// through the store's own connection.
	OrganizationStore interface {
		// Create insert or overwrite the organization at org.Address
		Create(ctx context.Context, tx *db.DB, org *Organization) error
		// Find return an empty organization (ID 0) if not found
		Find(ctx context.Context, tx *db.DB, address string) (*Organization, error)
		Update(ctx context.Context, tx *db.DB, org *Organization) error
		// IsMember scan the rosters of all organizations
		IsMember(ctx context.Context, tx *db.DB, account string) (bool, error)
		List(ctx context.Context, tx *db.DB, fromID int64, limit int) ([]*Organization, error)
	}

	// OrganizationService organization registry
	OrganizationService interface {
		CreateOrganization(ctx context.Context, inv *Invocation, org *Organization) error
		UpdateOrganization(ctx context.Context, inv *Invocation, update *OrganizationUpdate) error
		AddMember(ctx context.Context, inv *Invocation, member Member) error
		RemoveMember(ctx context.Context, inv *Invocation, member Member) error
		ChangeThresholds(ctx context.Context, inv *Invocation, orgID string, policy ThresholdPolicy) error
		IsMember(ctx context.Context, account string) (bool, error)
		IsOrganizationMember(ctx context.Context, orgID, account string) (bool, error)
		// Authorize load the organization and check the caller may act on it
		Authorize(ctx context.Context, tx *db.DB, inv *Invocation, orgID string) (*Organization, error)
	}
)

// IsValid all thresholds non-negative
func (p ThresholdPolicy) IsValid() bool {
	return p.ProposalThreshold >= 0 && p.ApprovalThreshold >= 0 && p.ParticipationThreshold >= 0
}

// HasMember check if account is in the roster
func (o *Organization) HasMember(account string) bool {
	if account == "" {
		return false
	}

	return govalidator.IsIn(account, o.Members...)
}

// AddMember append account to the roster, duplicates included
func (o *Organization) AddMember(account string) {
	o.Members = append(o.Members, account)
}

// RemoveMember remove the first entry matching account by moving the last
// entry into its slot. Report whether an entry was removed.
func (o *Organization) RemoveMember(account string) bool {
	for idx, m := range o.Members {
		if m != account {
			continue
		}

		last := len(o.Members) - 1
		o.Members[idx] = o.Members[last]
		o.Members = o.Members[:last]
		return true
	}

	return false
}

// Apply copy the non-empty fields of update onto the organization. The
// policy is replaced as a whole and only when its proposal threshold is set.
func (o *Organization) Apply(update *OrganizationUpdate) {
	if update.Name != "" {
		o.Name = update.Name
	}

	if update.Description != "" {
		o.Description = update.Description
	}

	if len(update.Members) > 0 {
		o.Members = UniqueMembers(update.Members)
	}

	if p := update.Policy; p != nil && p.ProposalThreshold != 0 {
		o.Policy = *p
	}
}

// UniqueMembers drop empty and repeated accounts, keeping the first position
func UniqueMembers(accounts []string) pq.StringArray {
	members := make(pq.StringArray, 0, len(accounts))
	seen := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if a == "" || seen[a] {
			continue
		}

		seen[a] = true
		members = append(members, a)
	}

	return members
}
