package handler

import (
	"time"

	"ledgerguard/internal/hierarchy/models"
)

type NodeResponse struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	ParentID       string    `json:"parent_id,omitempty"`
	Login          string    `json:"login"`
	RoleName       string    `json:"role_name"`
	RoleType       string    `json:"role_type"`
	HierarchyLevel int       `json:"hierarchy_level"`
	HierarchyPath  []string  `json:"hierarchy_path"`
	IsKYCVerified  bool      `json:"is_kyc_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromNode(n *models.TenantNode) *NodeResponse {
	resp := &NodeResponse{
		ID:             n.ID.String(),
		TenantID:       n.TenantID.String(),
		Login:          n.Login,
		RoleName:       string(n.RoleName),
		RoleType:       string(n.RoleType),
		HierarchyLevel: n.HierarchyLevel,
		HierarchyPath:  make([]string, len(n.HierarchyPath)),
		IsKYCVerified:  n.IsKYCVerified,
		CreatedAt:      n.CreatedAt,
	}
	if n.ParentID != nil {
		resp.ParentID = n.ParentID.String()
	}
	for i, p := range n.HierarchyPath {
		resp.HierarchyPath[i] = p.String()
	}
	return resp
}

// NodeListResponse carries descendant or ancestor ids of NodeID.
type NodeListResponse struct {
	NodeID string   `json:"node_id"`
	Nodes  []string `json:"nodes"`
}
