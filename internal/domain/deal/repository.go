package deal

import "context"

// ListFilter narrows List; zero-value fields are ignored, set fields AND together.
type ListFilter struct {
	Status            Status
	InvestmentVehicle string
	Sector            string
	Stage             string
	Page              int
	PageSize          int
}

type ListResult struct {
	Items    []Deal `json:"items"`
	Total    int64  `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type Repository interface {
	Create(ctx context.Context, d *Deal) error
	GetByDealID(ctx context.Context, dealID string) (*Deal, error)
	// GetByDealIDForUpdate locks the row (SELECT ... FOR UPDATE); only valid inside a tx.
	GetByDealIDForUpdate(ctx context.Context, dealID string) (*Deal, error)
	List(ctx context.Context, f ListFilter) (*ListResult, error)
	Save(ctx context.Context, d *Deal) error
	Delete(ctx context.Context, d *Deal) error
}
