package models

// Actor is the resolved identity performing an operation: exactly one of
// RootUser, BusinessUser or Employee. Callers type-switch on it.
type Actor interface {
	Node() *TenantNode
	isActor()
}

// RootUser is the SUPER ADMIN at the top of a tenant tree.
type RootUser struct {
	node *TenantNode
}

// BusinessUser is an ADMIN or USER account holder.
type BusinessUser struct {
	node *TenantNode
}

// Employee is staff acting on behalf of its parent. Parent is nil when the
// parent record could not be resolved.
type Employee struct {
	node   *TenantNode
	Parent *TenantNode
}

func (a RootUser) Node() *TenantNode     { return a.node }
func (a BusinessUser) Node() *TenantNode { return a.node }
func (a Employee) Node() *TenantNode     { return a.node }

func (RootUser) isActor()     {}
func (BusinessUser) isActor() {}
func (Employee) isActor()     {}

// HasQualifyingParent reports whether the employee's parent is an ADMIN or
// SUPER ADMIN.
func (a Employee) HasQualifyingParent() bool {
	return a.Parent != nil && a.Parent.RoleName.IsAdministrative()
}

// NewActor classifies node. parent is only consulted for employees.
func NewActor(node, parent *TenantNode) Actor {
	switch {
	case node.IsEmployee():
		return Employee{node: node, Parent: parent}
	case node.RoleName == RoleSuperAdmin:
		return RootUser{node: node}
	default:
		return BusinessUser{node: node}
	}
}
