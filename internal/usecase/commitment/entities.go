package commitment

import (
	"time"

	domain "angel-forum-backend/internal/domain/commitment"
)

type AddCommitmentInput struct {
	DealID     string
	InvestorID string  // 32-char hex
	Amount     float64 // currency minor units
}

type CommitmentDTO struct {
	CommitmentID   string    `json:"commitment_id"`
	DealID         string    `json:"deal_id"`
	InvestorID     string    `json:"investor_id"`
	Amount         float64   `json:"amount"`
	AmountReceived float64   `json:"amount_received"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type MetricsDTO struct {
	DealID         string  `json:"deal_id"`
	TotalCommitted float64 `json:"total_committed"`
	TotalFunded    float64 `json:"total_funded"`
	InvestorCount  int     `json:"investor_count"`
}

func toMetricsDTO(dealID string, m domain.Metrics) *MetricsDTO {
	return &MetricsDTO{
		DealID:         dealID,
		TotalCommitted: m.TotalCommitted,
		TotalFunded:    m.TotalFunded,
		InvestorCount:  m.InvestorCount,
	}
}
