package handler

import (
	"ledgerguard/internal/hierarchy/models"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
)

type RegisterNodeRequest struct {
	ParentID string `json:"parent_id" validate:"required,uuid"`
	Login    string `json:"login" validate:"required,max=255"`
	RoleName string `json:"role_name" validate:"required"`
	RoleType string `json:"role_type" validate:"required,oneof=business employee"`
}

// Parse converts the wire fields into domain values.
func (r *RegisterNodeRequest) Parse() (id.NodeID, models.RoleName, models.RoleType, error) {
	parentID, err := id.ParseNodeID(r.ParentID)
	if err != nil {
		return id.NodeID{}, "", "", err
	}
	role, err := models.ParseRoleName(r.RoleName)
	if err != nil {
		return id.NodeID{}, "", "", err
	}
	roleType := models.RoleType(r.RoleType)
	if !roleType.IsValid() {
		return id.NodeID{}, "", "", dErrors.New(dErrors.CodeValidation, "unknown role type")
	}
	return parentID, role, roleType, nil
}
