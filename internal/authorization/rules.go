package authorization

import (
	"context"

	"ledgerguard/internal/hierarchy/models"
	id "ledgerguard/pkg/domain"
)

// scopeFunc reports whether target lies in the descendant set of root.
type scopeFunc func(ctx context.Context, root, target id.NodeID) (bool, error)

// evaluateRules applies the decision table. First match wins; anything not
// matched is denied.
//
//  1. actor is the target                                  → allow SELF
//  2. employee without an ADMIN or SUPER ADMIN parent       → deny NO_PARENT_CONTEXT
//  3. root (or root's employee) over an ADMIN of its tenant → allow ROOT_OVER_ADMIN
//  4. ADMIN over a descendant                              → allow HIERARCHY_ACCESS
//  5. employee over a descendant of its parent             → allow DELEGATED_HIERARCHY_ACCESS
//  6. otherwise                                            → deny OUT_OF_SCOPE
func evaluateRules(ctx context.Context, actor models.Actor, target *models.TenantNode, inScope scopeFunc) (bool, ReasonCode, error) {
	self := actor.Node()

	// Rule 1
	if self.ID == target.ID {
		return true, ReasonSelf, nil
	}

	// Rule 2
	emp, isEmployee := actor.(models.Employee)
	if isEmployee && !emp.HasQualifyingParent() {
		return false, ReasonNoParentContext, nil
	}

	// Rule 3
	if target.RoleName == models.RoleAdmin {
		switch a := actor.(type) {
		case models.RootUser:
			if a.Node().TenantID == target.TenantID {
				return true, ReasonRootOverAdmin, nil
			}
		case models.Employee:
			if a.Parent.RoleName == models.RoleSuperAdmin && a.Parent.TenantID == target.TenantID {
				return true, ReasonRootOverAdmin, nil
			}
		}
	}

	// Rule 4
	if _, ok := actor.(models.BusinessUser); ok && self.RoleName == models.RoleAdmin {
		in, err := inScope(ctx, self.ID, target.ID)
		if err != nil {
			return false, "", err
		}
		if in {
			return true, ReasonHierarchyAccess, nil
		}
	}

	// Rule 5
	if isEmployee {
		in, err := inScope(ctx, emp.Parent.ID, target.ID)
		if err != nil {
			return false, "", err
		}
		if in {
			return true, ReasonDelegatedHierarchyAccess, nil
		}
	}

	// Rule 6
	return false, ReasonOutOfScope, nil
}
