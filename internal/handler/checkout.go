package handler

import (
	"net/http"

	"campus-commerce/internal/dto"
	"campus-commerce/internal/model"
	"campus-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func schoolIDFromContext(c echo.Context) (string, error) {
	schoolID, _ := c.Get("school_id").(string)
	if schoolID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing school scope")
	}
	return schoolID, nil
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	schoolID, err := schoolIDFromContext(c)
	if err != nil {
		return err
	}

	items := make([]service.RequestedItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.RequestedItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	result, err := h.checkoutService.Checkout(ctx, &service.CheckoutRequest{
		CatalogID:     req.CatalogID,
		SchoolID:      schoolID,
		AccountID:     req.AccountID,
		CustomerName:  req.CustomerName,
		Items:         items,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		PointOfSale:   req.PointOfSale,
	})
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, toCheckoutResponse(result))
}

func (h *CheckoutHandler) VerifyPin(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PinVerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.checkoutService.VerifyPin(ctx, req.ChallengeID, req.Pin)
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, toCheckoutResponse(result))
}

func toCheckoutResponse(result *service.CheckoutResult) *dto.CheckoutResponse {
	resp := &dto.CheckoutResponse{
		Pricing: dto.Pricing{
			Subtotal:      result.Pricing.Subtotal.StringFixed(2),
			TaxAmount:     result.Pricing.TaxAmount.StringFixed(2),
			OriginalTotal: result.Pricing.OriginalTotal.StringFixed(2),
			SubsidyValue:  result.Pricing.SubsidyValue.StringFixed(2),
			FinalAmount:   result.Pricing.FinalAmount.StringFixed(2),
		},
		PinRequired: result.PinRequired,
		ChallengeID: result.ChallengeID,
	}
	if result.Order != nil {
		resp.OrderID = result.Order.ID
		resp.OrderStatus = string(result.Order.Status)
	}
	return resp
}
