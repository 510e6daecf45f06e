package deal

import (
	"time"

	domain "angel-forum-backend/internal/domain/deal"
)

type CreateDealInput struct {
	Name               string `json:"name"`
	CompanyName        string `json:"company_name"`
	CompanyDescription string `json:"company_description"`
	CompanyType        string `json:"company_type"`
	Sector             string `json:"sector"`
	Stage              string `json:"stage"`
	InstrumentType     string `json:"instrument_type"`
	InvestmentVehicle  string `json:"investment_vehicle"`

	TargetAmount  float64  `json:"target_amount"`
	Valuation     float64  `json:"valuation"`
	MinCommitment float64  `json:"min_commitment"`
	MaxCommitment *float64 `json:"max_commitment,omitempty"`
	DiscountRate  *float64 `json:"discount_rate,omitempty"`
}

// UpdateDealInput is a partial patch; nil fields are left untouched.
// Status is deliberately absent — lifecycle changes go through UpdateStatus,
// and MinCommitment is fixed at creation.
type UpdateDealInput struct {
	Name               *string `json:"name,omitempty"`
	CompanyName        *string `json:"company_name,omitempty"`
	CompanyDescription *string `json:"company_description,omitempty"`
	CompanyType        *string `json:"company_type,omitempty"`
	Sector             *string `json:"sector,omitempty"`
	Stage              *string `json:"stage,omitempty"`
	InstrumentType     *string `json:"instrument_type,omitempty"`
	InvestmentVehicle  *string `json:"investment_vehicle,omitempty"`

	TargetAmount  *float64 `json:"target_amount,omitempty"`
	Valuation     *float64 `json:"valuation,omitempty"`
	MaxCommitment *float64 `json:"max_commitment,omitempty"`
	DiscountRate  *float64 `json:"discount_rate,omitempty"`
}

type DealDTO struct {
	DealID string `json:"deal_id"`

	Name               string `json:"name"`
	CompanyName        string `json:"company_name"`
	CompanyDescription string `json:"company_description"`
	CompanyType        string `json:"company_type"`
	Sector             string `json:"sector"`
	Stage              string `json:"stage"`
	InstrumentType     string `json:"instrument_type"`
	InvestmentVehicle  string `json:"investment_vehicle"`

	TargetAmount  float64  `json:"target_amount"`
	Valuation     float64  `json:"valuation"`
	MinCommitment float64  `json:"min_commitment"`
	MaxCommitment *float64 `json:"max_commitment,omitempty"`
	DiscountRate  *float64 `json:"discount_rate,omitempty"`

	Status          string     `json:"status"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	ActualCloseDate *time.Time `json:"actual_close_date,omitempty"`
	FundedDate      *time.Time `json:"funded_date,omitempty"`
	ExitDate        *time.Time `json:"exit_date,omitempty"`

	TotalCommitted float64 `json:"total_committed"`
	TotalFunded    float64 `json:"total_funded"`
	InvestorCount  int     `json:"investor_count"`

	RequiresRBIApproval   bool `json:"requires_rbi_approval"`
	IsAngelTaxExempt      bool `json:"is_angel_tax_exempt"`
	IsPressNote3Compliant bool `json:"is_press_note3_compliant"`

	CreatedAt time.Time `json:"created_at"`
}

type ListDealsOutput struct {
	Items    []DealDTO `json:"items"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

func toDTO(d *domain.Deal) *DealDTO {
	return &DealDTO{
		DealID:                d.DealID,
		Name:                  d.Name,
		CompanyName:           d.CompanyName,
		CompanyDescription:    d.CompanyDescription,
		CompanyType:           d.CompanyType,
		Sector:                d.Sector,
		Stage:                 d.Stage,
		InstrumentType:        d.InstrumentType,
		InvestmentVehicle:     d.InvestmentVehicle,
		TargetAmount:          d.TargetAmount,
		Valuation:             d.Valuation,
		MinCommitment:         d.MinCommitment,
		MaxCommitment:         d.MaxCommitment,
		DiscountRate:          d.DiscountRate,
		Status:                string(d.Status),
		PublishedAt:           d.PublishedAt,
		ActualCloseDate:       d.ActualCloseDate,
		FundedDate:            d.FundedDate,
		ExitDate:              d.ExitDate,
		TotalCommitted:        d.TotalCommitted,
		TotalFunded:           d.TotalFunded,
		InvestorCount:         d.InvestorCount,
		RequiresRBIApproval:   d.RequiresRBIApproval,
		IsAngelTaxExempt:      d.IsAngelTaxExempt,
		IsPressNote3Compliant: d.IsPressNote3Compliant,
		CreatedAt:             d.CreatedAt,
	}
}
