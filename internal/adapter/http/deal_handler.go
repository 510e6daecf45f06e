package http

import (
	"net/http"
	"strconv"

	dealDomain "angel-forum-backend/internal/domain/deal"
	"angel-forum-backend/internal/usecase/deal"

	"github.com/labstack/echo/v4"
)

type DealHandler struct{ uc *deal.Usecase }

func NewDealHandler(uc *deal.Usecase) *DealHandler { return &DealHandler{uc: uc} }

type createDealReq struct {
	Name               string `json:"name"                validate:"required"`
	CompanyName        string `json:"company_name"        validate:"required"`
	CompanyDescription string `json:"company_description"`
	CompanyType        string `json:"company_type"`
	Sector             string `json:"sector"              validate:"required"`
	Stage              string `json:"stage"               validate:"required"`
	InstrumentType     string `json:"instrument_type"`
	InvestmentVehicle  string `json:"investment_vehicle"`

	TargetAmount  float64  `json:"target_amount"  validate:"required,dec2"`
	Valuation     float64  `json:"valuation"      validate:"required,dec2"`
	MinCommitment float64  `json:"min_commitment" validate:"required,dec2"`
	MaxCommitment *float64 `json:"max_commitment" validate:"omitempty,dec2"`
	DiscountRate  *float64 `json:"discount_rate"  validate:"omitempty,gte=0,lte=100"`
}

func (h *DealHandler) CreateDeal(c echo.Context) error {
	var req createDealReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Create(c.Request().Context(), deal.CreateDealInput{
		Name:               req.Name,
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		CompanyType:        req.CompanyType,
		Sector:             req.Sector,
		Stage:              req.Stage,
		InstrumentType:     req.InstrumentType,
		InvestmentVehicle:  req.InvestmentVehicle,
		TargetAmount:       req.TargetAmount,
		Valuation:          req.Valuation,
		MinCommitment:      req.MinCommitment,
		MaxCommitment:      req.MaxCommitment,
		DiscountRate:       req.DiscountRate,
	})
	if err != nil {
		return jsonDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DealHandler) GetDeal(c echo.Context) error {
	dealID := c.Param("deal_id")
	dto, err := h.uc.Get(c.Request().Context(), dealID)
	if err != nil {
		return jsonDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) ListDeals(c echo.Context) error {
	f := dealDomain.ListFilter{
		Status:            dealDomain.Status(c.QueryParam("status")),
		InvestmentVehicle: c.QueryParam("investment_vehicle"),
		Sector:            c.QueryParam("sector"),
		Stage:             c.QueryParam("stage"),
	}
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Page = n
		}
	}
	if v := c.QueryParam("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.PageSize = n
		}
	}

	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return jsonDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DealHandler) UpdateDeal(c echo.Context) error {
	dealID := c.Param("deal_id")
	var req deal.UpdateDealInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	dto, err := h.uc.Update(c.Request().Context(), dealID, req)
	if err != nil {
		return jsonDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateDealStatusReq struct {
	Status string `json:"status" validate:"required,dealstatus"`
}

func (h *DealHandler) UpdateDealStatus(c echo.Context) error {
	dealID := c.Param("deal_id")
	var req updateDealStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.UpdateStatus(c.Request().Context(), dealID, dealDomain.Status(req.Status))
	if err != nil {
		return jsonDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) DeleteDeal(c echo.Context) error {
	dealID := c.Param("deal_id")
	if err := h.uc.Delete(c.Request().Context(), dealID); err != nil {
		return jsonDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
