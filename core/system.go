package core

import (
	"time"

	"github.com/asaskevich/govalidator"
)

type (
	// Policy governance behaviour switches
	Policy struct {
		// LegacyAuthorization accept membership of any organization instead
		// of the organization the operation targets
		LegacyAuthorization bool `json:"legacy_authorization"`
		// DedupVotes reject a second vote by the same voter
		DedupVotes bool `json:"dedup_votes"`
		// GuardExecuted reject executing a proposal twice
		GuardExecuted bool `json:"guard_executed"`
	}

	// System stores system information.
	System struct {
		Admins  []string
		Policy  Policy
		Version string
	}

	// Invocation is what the host supplies with every call
	Invocation struct {
		Sender string
		Time   time.Time
	}
)

// NewInvocation new invocation
func NewInvocation(sender string, at time.Time) *Invocation {
	return &Invocation{
		Sender: sender,
		Time:   at,
	}
}

// IsAdmin is admin
func (s *System) IsAdmin(userID string) bool {
	if len(s.Admins) == 0 || userID == "" {
		return false
	}

	return govalidator.IsIn(userID, s.Admins...)
}
