package handler

import (
	"time"

	piimodels "ledgerguard/internal/pii/models"
	"ledgerguard/internal/verification/models"
	"ledgerguard/internal/verification/service"
)

type RecordResponse struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	OwnerID         string    `json:"owner_id"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	Version         int64     `json:"version"`
	ReviewedBy      string    `json:"reviewed_by,omitempty"`
	Country         string    `json:"country,omitempty"`
	BankName        string    `json:"bank_name,omitempty"`
	HolderName      string    `json:"holder_name,omitempty"`
	IFSC            string    `json:"ifsc,omitempty"`
	AccountType     string    `json:"account_type,omitempty"`
	IsPrimary       bool      `json:"is_primary"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromRecord(r *models.Record) *RecordResponse {
	resp := &RecordResponse{
		ID:              r.ID.String(),
		Kind:            string(r.Kind),
		OwnerID:         r.OwnerID.String(),
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		Version:         r.Version,
		Country:         r.Country,
		BankName:        r.BankName,
		HolderName:      r.HolderName,
		IFSC:            r.IFSC,
		AccountType:     string(r.AccountType),
		IsPrimary:       r.IsPrimary,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.ReviewedBy != nil {
		resp.ReviewedBy = r.ReviewedBy.String()
	}
	return resp
}

// RecordViewResponse is a record with its PII rendered for the caller.
type RecordViewResponse struct {
	Record     *RecordResponse       `json:"record"`
	Fields     []piimodels.FieldView `json:"fields"`
	Privilege  string                `json:"privilege"`
	ReasonCode string                `json:"reason_code"`
}

func FromView(v *service.RecordView) *RecordViewResponse {
	fields := v.Fields
	if fields == nil {
		fields = []piimodels.FieldView{}
	}
	return &RecordViewResponse{
		Record:     FromRecord(v.Record),
		Fields:     fields,
		Privilege:  string(v.Privilege),
		ReasonCode: string(v.ReasonCode),
	}
}

type OwnerStatusResponse struct {
	OwnerID                  string `json:"owner_id"`
	IsKYCVerified            bool   `json:"is_kyc_verified"`
	HasVerifiedFundingSource bool   `json:"has_verified_funding_source"`
}

func FromOwnerStatus(st *service.OwnerStatus) *OwnerStatusResponse {
	return &OwnerStatusResponse{
		OwnerID:                  st.OwnerID.String(),
		IsKYCVerified:            st.IsKYCVerified,
		HasVerifiedFundingSource: st.HasVerifiedFundingSource,
	}
}
