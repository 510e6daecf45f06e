package http

import (
	"net/http"

	"angel-forum-backend/internal/usecase/commitment"

	"github.com/labstack/echo/v4"
)

type CommitmentHandler struct{ uc *commitment.Usecase }

func NewCommitmentHandler(uc *commitment.Usecase) *CommitmentHandler {
	return &CommitmentHandler{uc: uc}
}

type addCommitmentReq struct {
	InvestorID string  `json:"investor_id" validate:"required,hex32"`
	Amount     float64 `json:"amount"      validate:"required,dec2"`
}

func (h *CommitmentHandler) AddCommitment(c echo.Context) error {
	dealID := c.Param("deal_id")
	if dealID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing deal_id path param"})
	}
	var req addCommitmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Add(c.Request().Context(), commitment.AddCommitmentInput{
		DealID:     dealID,
		InvestorID: req.InvestorID,
		Amount:     req.Amount,
	})
	if err != nil {
		return jsonDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CommitmentHandler) DealMetrics(c echo.Context) error {
	dto, err := h.uc.Metrics(c.Request().Context(), c.Param("deal_id"))
	if err != nil {
		return jsonDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CommitmentHandler) RefreshDealMetrics(c echo.Context) error {
	dto, err := h.uc.RefreshMetrics(c.Request().Context(), c.Param("deal_id"))
	if err != nil {
		return jsonDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
