package commitment

import "context"

type Repository interface {
	Create(ctx context.Context, c *Commitment) error
	GetByCommitmentID(ctx context.Context, commitmentID string) (*Commitment, error)
	// ListByDealID returns every commitment of a deal, cancelled included.
	ListByDealID(ctx context.Context, dealNumericID uint64) ([]Commitment, error)
	Save(ctx context.Context, c *Commitment) error
}
