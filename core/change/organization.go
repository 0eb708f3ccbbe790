package change

import (
	"dao/core"
	"dao/pkg/mtg"
)

// OrganizationReq payload of an UpdateDAO change
type OrganizationReq struct {
	Name        string                `json:"name,omitempty"`
	Description string                `json:"description,omitempty"`
	Members     []string              `json:"members,omitempty"`
	Policy      *core.ThresholdPolicy `json:"policy,omitempty"`
}

// Kind implement Payload
func (OrganizationReq) Kind() core.ChangeKind {
	return core.ChangeKindUpdateDAO
}

// Update convert to an organization update of address
func (r OrganizationReq) Update(address string) *core.OrganizationUpdate {
	return &core.OrganizationUpdate{
		Address:     address,
		Name:        r.Name,
		Description: r.Description,
		Members:     r.Members,
		Policy:      r.Policy,
	}
}

// MarshalBinary marshal req to binary
func (r OrganizationReq) MarshalBinary() ([]byte, error) {
	var policy core.ThresholdPolicy
	if r.Policy != nil {
		policy = *r.Policy
	}

	return mtg.Encode(
		r.Name,
		r.Description,
		r.Members,
		r.Policy != nil,
		policy.ProposalThreshold,
		policy.ApprovalThreshold,
		policy.ParticipationThreshold,
	)
}

// UnmarshalBinary unmarshal bytes to req
func (r *OrganizationReq) UnmarshalBinary(data []byte) error {
	var (
		req       OrganizationReq
		hasPolicy bool
		policy    core.ThresholdPolicy
	)

	if _, err := mtg.Scan(data,
		&req.Name,
		&req.Description,
		&req.Members,
		&hasPolicy,
		&policy.ProposalThreshold,
		&policy.ApprovalThreshold,
		&policy.ParticipationThreshold,
	); err != nil {
		return err
	}

	if hasPolicy {
		req.Policy = &policy
	}

	*r = req
	return nil
}
