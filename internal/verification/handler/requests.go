package handler

import (
	"ledgerguard/internal/verification/models"
)

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"max=1024"`
}

// Parse normalizes the requested status. A REJECT without a reason is left to
// the service so the failure is audited.
func (r *TransitionRequest) Parse() (models.Status, error) {
	return models.ParseStatus(r.Status)
}

type SubmitKYCRequest struct {
	OwnerID string `json:"owner_id" validate:"required,uuid"`
	Country string `json:"country" validate:"required,max=64"`
	PAN     string `json:"pan" validate:"required"`
	Aadhaar string `json:"aadhaar" validate:"required"`
}

type AddBankRequest struct {
	OwnerID       string `json:"owner_id" validate:"required,uuid"`
	BankName      string `json:"bank_name" validate:"required,min=3,max=255"`
	HolderName    string `json:"holder_name" validate:"required,min=3,max=255"`
	IFSC          string `json:"ifsc" validate:"required"`
	AccountType   string `json:"account_type" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	Primary       bool   `json:"primary"`
}

// Validate catches account type typos before the service opens a transaction.
func (r *AddBankRequest) Validate() error {
	_, err := models.ParseAccountType(r.AccountType)
	return err
}
