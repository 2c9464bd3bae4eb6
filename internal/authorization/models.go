package authorization

import (
	"ledgerguard/internal/hierarchy/models"
	id "ledgerguard/pkg/domain"
)

// ReasonCode explains an allow or deny outcome.
type ReasonCode string

const (
	ReasonSelf                     ReasonCode = "SELF"
	ReasonNoParentContext          ReasonCode = "NO_PARENT_CONTEXT"
	ReasonRootOverAdmin            ReasonCode = "ROOT_OVER_ADMIN"
	ReasonHierarchyAccess          ReasonCode = "HIERARCHY_ACCESS"
	ReasonDelegatedHierarchyAccess ReasonCode = "DELEGATED_HIERARCHY_ACCESS"
	ReasonOutOfScope               ReasonCode = "OUT_OF_SCOPE"

	// ReasonDepthExceeded is only recorded in audit; the caller gets an error.
	ReasonDepthExceeded ReasonCode = "HIERARCHY_DEPTH_EXCEEDED"
)

// Decision is the transient result of evaluating an actor against a target
// owner. It is never persisted.
type Decision struct {
	ActorID       id.NodeID       `json:"actor_id"`
	ActorRole     models.RoleName `json:"actor_role"`
	TargetOwnerID id.NodeID       `json:"target_owner_id"`
	Allowed       bool            `json:"allowed"`
	Reason        ReasonCode      `json:"reason_code"`
}

// Outcome is the metric and log label for the decision.
func (d *Decision) Outcome() string {
	if d.Allowed {
		return "allow"
	}
	return "deny"
}

// scopeExclusion keeps the tree root out of every descendant walk used for
// authorization.
var scopeExclusion = models.RoleExclusion{models.RoleSuperAdmin}
