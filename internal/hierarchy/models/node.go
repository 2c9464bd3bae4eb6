package models

import (
	"slices"
	"strings"
	"time"

	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
)

// TenantNode is one account in a tenant tree.
//
// Invariants:
//   - HierarchyLevel == parent.HierarchyLevel + 1 (root is level 0)
//   - HierarchyPath == parent.HierarchyPath ++ [parent.ID] (root-first, excludes self)
//   - exactly one root per tenant; the root is a SUPER ADMIN business node
//   - SUPER ADMIN appears only at the root
//   - employees always have a parent and never have children
//   - RoleType matches RoleName (EMPLOYEE ↔ employee, everything else business)
//   - a node is immutable once created, except for the derived IsKYCVerified flag
type TenantNode struct {
	ID             id.NodeID   `json:"id"`
	TenantID       id.TenantID `json:"tenant_id"`
	ParentID       *id.NodeID  `json:"parent_id,omitempty"`
	Login          string      `json:"login"`
	RoleName       RoleName    `json:"role_name"`
	RoleType       RoleType    `json:"role_type"`
	HierarchyLevel int         `json:"hierarchy_level"`
	HierarchyPath  []id.NodeID `json:"hierarchy_path"`
	IsKYCVerified  bool        `json:"is_kyc_verified"`
	CreatedAt      time.Time   `json:"created_at"`
}

// NewRootNode creates the SUPER ADMIN root of a new tenant tree.
func NewRootNode(nodeID id.NodeID, tenantID id.TenantID, login string, now time.Time) (*TenantNode, error) {
	login, err := normalizeLogin(login)
	if err != nil {
		return nil, err
	}
	return &TenantNode{
		ID:             nodeID,
		TenantID:       tenantID,
		Login:          login,
		RoleName:       RoleSuperAdmin,
		RoleType:       RoleTypeBusiness,
		HierarchyLevel: 0,
		HierarchyPath:  []id.NodeID{},
		CreatedAt:      now,
	}, nil
}

// NewChildNode derives level, path and tenant from parent.
func NewChildNode(nodeID id.NodeID, parent *TenantNode, login string, role RoleName, roleType RoleType, now time.Time) (*TenantNode, error) {
	if parent == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "child node requires a parent")
	}
	login, err := normalizeLogin(login)
	if err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown role name")
	}
	if role == RoleSuperAdmin {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "SUPER ADMIN may only be the tree root")
	}
	if roleType != role.ExpectedRoleType() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "role type does not match role name")
	}
	if parent.IsEmployee() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "employees cannot have children")
	}

	parentID := parent.ID
	path := make([]id.NodeID, 0, len(parent.HierarchyPath)+1)
	path = append(path, parent.HierarchyPath...)
	path = append(path, parent.ID)

	return &TenantNode{
		ID:             nodeID,
		TenantID:       parent.TenantID,
		ParentID:       &parentID,
		Login:          login,
		RoleName:       role,
		RoleType:       roleType,
		HierarchyLevel: parent.HierarchyLevel + 1,
		HierarchyPath:  path,
		CreatedAt:      now,
	}, nil
}

func normalizeLogin(login string) (string, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" {
		return "", dErrors.New(dErrors.CodeInvariantViolation, "login cannot be empty")
	}
	if len(login) > 254 {
		return "", dErrors.New(dErrors.CodeInvariantViolation, "login must be 254 characters or less")
	}
	return login, nil
}

func (n *TenantNode) IsRoot() bool {
	return n.ParentID == nil
}

func (n *TenantNode) IsEmployee() bool {
	return n.RoleName == RoleEmployee
}

// Ancestors returns a copy of the root-first ancestor path.
func (n *TenantNode) Ancestors() []id.NodeID {
	return slices.Clone(n.HierarchyPath)
}

// HasAncestor reports whether ancestor lies on this node's path.
func (n *TenantNode) HasAncestor(ancestor id.NodeID) bool {
	return slices.Contains(n.HierarchyPath, ancestor)
}

// Clone returns a deep copy so stores never hand out shared state.
func (n *TenantNode) Clone() *TenantNode {
	c := *n
	if n.ParentID != nil {
		p := *n.ParentID
		c.ParentID = &p
	}
	c.HierarchyPath = slices.Clone(n.HierarchyPath)
	if c.HierarchyPath == nil {
		c.HierarchyPath = []id.NodeID{}
	}
	return &c
}

// NodeSet is a set of node ids.
type NodeSet map[id.NodeID]struct{}

func (s NodeSet) Contains(nodeID id.NodeID) bool {
	_, ok := s[nodeID]
	return ok
}

// Slice returns the members in no particular order.
func (s NodeSet) Slice() []id.NodeID {
	out := make([]id.NodeID, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// RoleExclusion lists roles whose nodes, and the subtrees beneath them, are
// left out of a descendant walk.
type RoleExclusion []RoleName

func (e RoleExclusion) Excludes(n *TenantNode) bool {
	return slices.Contains(e, n.RoleName)
}

// Signature is a stable cache key fragment for the exclusion.
func (e RoleExclusion) Signature() string {
	if len(e) == 0 {
		return "all"
	}
	names := make([]string, len(e))
	for i, r := range e {
		names[i] = strings.ReplaceAll(string(r), " ", "_")
	}
	slices.Sort(names)
	return strings.Join(slices.Compact(names), ",")
}
