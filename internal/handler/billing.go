package handler

import (
	"net/http"
	"time"

	"campus-commerce/internal/dto"
	"campus-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type BillingHandler struct {
	billingService service.BillingService
}

func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

func (h *BillingHandler) RecurringStatus(c echo.Context) error {
	ctx := c.Request().Context()
	scopeID := c.Param("scopeID")

	views, err := h.billingService.RecurringStatus(ctx, scopeID, time.Now())
	if err != nil {
		return err
	}

	statuses := make([]*dto.TransactionStatus, len(views))
	for i, view := range views {
		statuses[i] = &dto.TransactionStatus{
			ID:               view.Transaction.ID,
			Description:      view.Transaction.Description,
			TotalAmount:      view.Transaction.TotalAmount.StringFixed(2),
			DueDate:          view.Transaction.DueDate,
			Status:           string(view.Projection.Status),
			DaysLate:         view.Projection.DaysLate,
			LateFee:          view.Projection.LateFee.StringFixed(2),
			TotalWithLateFee: view.Projection.TotalWithLateFee.StringFixed(2),
		}
	}

	return c.JSON(http.StatusOK, statuses)
}
