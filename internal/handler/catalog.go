package handler

import (
	"net/http"
	"time"

	"campus-commerce/internal/model"
	"campus-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListActive(c echo.Context) error {
	ctx := c.Request().Context()

	schoolID, err := schoolIDFromContext(c)
	if err != nil {
		return err
	}

	catalogs, err := h.catalogService.ListActive(ctx, schoolID, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, catalogs)
}

func (h *CatalogHandler) Save(c echo.Context) error {
	ctx := c.Request().Context()

	var catalog model.Catalog
	if err := c.Bind(&catalog); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.catalogService.Save(ctx, &catalog)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"catalog_id": id})
}
