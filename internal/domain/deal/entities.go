package deal

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusLive      Status = "live"
	StatusClosing   Status = "closing"
	StatusClosed    Status = "closed"
	StatusFunded    Status = "funded"
	StatusExited    Status = "exited"
	StatusCancelled Status = "cancelled"
)

// Domain error kinds. Usecases wrap these with %w and detail text;
// handlers map them with errors.Is.
var (
	ErrNotFound          = errors.New("deal not found")
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrConflict          = errors.New("conflict")
)

// transitions is the full lifecycle graph. exited and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusLive, StatusCancelled},
	StatusLive:      {StatusClosing},
	StatusClosing:   {StatusClosed, StatusLive}, // closing → live reopens the deal
	StatusClosed:    {StatusFunded},
	StatusFunded:    {StatusExited},
	StatusExited:    {},
	StatusCancelled: {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Deletable: only deals that never went live (or were cancelled) may be removed.
func (s Status) Deletable() bool {
	return s == StatusDraft || s == StatusCancelled
}

// AcceptingCommitments: investors can commit while the round is open.
func (s Status) AcceptingCommitments() bool {
	return s == StatusLive || s == StatusClosing
}

type Deal struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	DealID string `gorm:"size:32;uniqueIndex:ux_deals_deal_id_active" json:"deal_id"`

	Name               string `gorm:"size:255" json:"name"`
	CompanyName        string `gorm:"size:255" json:"company_name"`
	CompanyDescription string `gorm:"type:text" json:"company_description"`
	CompanyType        string `gorm:"size:64" json:"company_type"`
	Sector             string `gorm:"size:64;index:idx_deals_sector" json:"sector"`
	Stage              string `gorm:"size:64;index:idx_deals_stage" json:"stage"`
	InstrumentType     string `gorm:"size:64" json:"instrument_type"`
	InvestmentVehicle  string `gorm:"size:64;index:idx_deals_vehicle" json:"investment_vehicle"`

	TargetAmount  float64  `gorm:"type:decimal(18,2)" json:"target_amount"`
	Valuation     float64  `gorm:"type:decimal(18,2)" json:"valuation"`
	MinCommitment float64  `gorm:"type:decimal(18,2)" json:"min_commitment"`
	MaxCommitment *float64 `gorm:"type:decimal(18,2)" json:"max_commitment,omitempty"`
	DiscountRate  *float64 `gorm:"type:decimal(5,2)" json:"discount_rate,omitempty"`

	Status          Status     `gorm:"type:enum('draft','live','closing','closed','funded','exited','cancelled');default:'draft';index:idx_deals_status" json:"status"`
	StatusUpdatedAt time.Time  `gorm:"autoCreateTime" json:"status_updated_at"`
	PublishedAt     *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	ActualCloseDate *time.Time `gorm:"column:actual_close_date" json:"actual_close_date,omitempty"`
	FundedDate      *time.Time `gorm:"column:funded_date" json:"funded_date,omitempty"`
	ExitDate        *time.Time `gorm:"column:exit_date" json:"exit_date,omitempty"`

	// Cached rollups, refreshed by the metrics aggregator.
	TotalCommitted float64 `gorm:"type:decimal(18,2);default:0" json:"total_committed"`
	TotalFunded    float64 `gorm:"type:decimal(18,2);default:0" json:"total_funded"`
	InvestorCount  int     `gorm:"default:0" json:"investor_count"`

	RequiresRBIApproval   bool `gorm:"default:false" json:"requires_rbi_approval"`
	IsAngelTaxExempt      bool `gorm:"default:true" json:"is_angel_tax_exempt"`
	IsPressNote3Compliant bool `gorm:"default:true" json:"is_press_note3_compliant"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy string         `gorm:"size:32" json:"-"`
}

func (Deal) TableName() string { return "deals" }
