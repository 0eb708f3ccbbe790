package views

import (
	"time"

	"dao/core"
)

type (
	Policy struct {
		ProposalThreshold      int64 `json:"proposal_threshold"`
		ApprovalThreshold      int64 `json:"approval_threshold"`
		ParticipationThreshold int64 `json:"participation_threshold"`
	}

	Organization struct {
		ID          int64     `json:"id"`
		Address     string    `json:"address"`
		Name        string    `json:"name,omitempty"`
		Description string    `json:"description,omitempty"`
		Members     []string  `json:"members"`
		Policy      Policy    `json:"policy"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}
)

func PolicyView(p core.ThresholdPolicy) Policy {
	return Policy{
		ProposalThreshold:      p.ProposalThreshold,
		ApprovalThreshold:      p.ApprovalThreshold,
		ParticipationThreshold: p.ParticipationThreshold,
	}
}

func OrganizationView(org core.Organization) Organization {
	members := []string(org.Members)
	if members == nil {
		members = []string{}
	}

	return Organization{
		ID:          org.ID,
		Address:     org.Address,
		Name:        org.Name,
		Description: org.Description,
		Members:     members,
		Policy:      PolicyView(org.Policy),
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}

func OrganizationViews(orgs []*core.Organization) []Organization {
	var items = make([]Organization, len(orgs))
	for i, org := range orgs {
		items[i] = OrganizationView(*org)
	}
	return items
}
