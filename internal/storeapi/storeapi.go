// Package storeapi exposes the public storefront endpoints: catalog
// listings with discount annotation, the active announcement, the WhatsApp
// ordering link, and the magic-link sign-in flow.
package storeapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Ssnnee/theo-afrique-website/internal/auth"
	"github.com/Ssnnee/theo-afrique-website/internal/catalog"
	"github.com/Ssnnee/theo-afrique-website/internal/webserver"
	"github.com/Ssnnee/theo-afrique-website/internal/whatsapp"
)

var (
	catalogSvc *catalog.Service
	authSvc    *auth.Service
)

// InitRouter registers the public routes on the webserver.
func InitRouter(cs *catalog.Service, as *auth.Service) {
	catalogSvc = cs
	authSvc = as

	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/latest", latestProducts)
	webserver.PubGET("/products/limited", limitedProducts)
	webserver.PubGET("/products/:id", getProduct)
	webserver.PubGET("/categories", listCategories)
	webserver.PubGET("/categories/:name/products", productsByCategory)
	webserver.PubGET("/announcements/active", activeAnnouncement)
	webserver.PubPOST("/orders/whatsapp-link", whatsappOrderLink)
	webserver.PubPOST("/auth/login", requestLogin)
	webserver.PubGET("/auth/verify", verifyLogin)
}

func listProducts(c echo.Context) error {
	products, err := catalogSvc.ListProducts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list products")
	}
	return c.JSON(http.StatusOK, products)
}

func latestProducts(c echo.Context) error {
	products, err := catalogSvc.LatestProducts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list products")
	}
	return c.JSON(http.StatusOK, products)
}

func limitedProducts(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be a number")
	}
	products, err := catalogSvc.LimitedProducts(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list products")
	}
	return c.JSON(http.StatusOK, products)
}

func getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	product, err := catalogSvc.Product(c.Request().Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load product")
	}
	return c.JSON(http.StatusOK, product)
}

func listCategories(c echo.Context) error {
	categories, err := catalogSvc.Categories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list categories")
	}
	return c.JSON(http.StatusOK, categories)
}

func productsByCategory(c echo.Context) error {
	products, err := catalogSvc.ProductsByCategory(c.Request().Context(), c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list products")
	}
	return c.JSON(http.StatusOK, products)
}

func activeAnnouncement(c echo.Context) error {
	active, err := catalogSvc.ActiveAnnouncement(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve announcement")
	}
	// null body when nothing is in effect; the frontend branches on it.
	return c.JSON(http.StatusOK, active)
}

func whatsappOrderLink(c echo.Context) error {
	var req whatsapp.OrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order request")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order request")
	}

	appCtx := webserver.GetApp(c)
	phone := appCtx.GetSettingsStringValue("store", "whatsapp_phone")
	if phone == "" {
		phone = appCtx.Config().Store.WhatsappPhone
	}
	return c.JSON(http.StatusOK, map[string]string{"link": whatsapp.OrderLink(phone, req)})
}

type loginPayload struct {
	Email string `json:"email" validate:"required,email"`
}

func requestLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email is required")
	}
	if err := authSvc.RequestLogin(c.Request().Context(), payload.Email); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to send login link")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "email_sent"})
}

func verifyLogin(c echo.Context) error {
	email := c.QueryParam("email")
	token := c.QueryParam("token")

	session, err := authSvc.VerifyLogin(c.Request().Context(), email, token)
	if errors.Is(err, auth.ErrInvalidToken) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired login link")
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to verify login")
	}
	return c.JSON(http.StatusOK, map[string]string{"token": session})
}
