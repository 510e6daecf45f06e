package commitment

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending          Status = "pending"
	StatusCommitted        Status = "committed"
	StatusDocumentsPending Status = "documents-pending"
	StatusPaymentPending   Status = "payment-pending"
	StatusPaymentReceived  Status = "payment-received"
	StatusFunded           Status = "funded"
	StatusCancelled        Status = "cancelled"
)

// ActiveStatuses is the set counted by deal metrics. pending commitments have
// not progressed past intake and cancelled ones are dead, so neither is listed.
var ActiveStatuses = []Status{
	StatusCommitted,
	StatusDocumentsPending,
	StatusPaymentPending,
	StatusPaymentReceived,
	StatusFunded,
}

func (s Status) Active() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

type Commitment struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	CommitmentID string `gorm:"column:commitment_id;type:char(32);not null;uniqueIndex:ux_commitments_commitment_id_active" json:"commitment_id"`
	// FK to deals.id (numeric)
	DealID     uint64 `gorm:"column:deal_id;not null;index" json:"-"`
	InvestorID string `gorm:"column:investor_id;type:char(32);not null;index" json:"investor_id"`

	Amount         float64 `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	AmountReceived float64 `gorm:"column:amount_received;type:decimal(18,2);not null;default:0" json:"amount_received"`

	Status Status `gorm:"column:status;type:enum('pending','committed','documents-pending','payment-pending','payment-received','funded','cancelled');default:'pending'" json:"status"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
	DeletedBy *string        `gorm:"column:deleted_by;type:char(32)" json:"-"`
}

func (Commitment) TableName() string { return "deal_commitments" }

// Metrics is the point-in-time rollup over a deal's active commitments.
type Metrics struct {
	TotalCommitted float64 `json:"total_committed"`
	TotalFunded    float64 `json:"total_funded"`
	InvestorCount  int     `json:"investor_count"`
}

// Reduce folds commitments into Metrics, skipping non-active entries.
// InvestorCount counts commitments, not distinct investors.
func Reduce(list []Commitment) Metrics {
	var m Metrics
	for _, c := range list {
		if !c.Status.Active() {
			continue
		}
		m.TotalCommitted += c.Amount
		m.TotalFunded += c.AmountReceived
		m.InvestorCount++
	}
	return m
}
