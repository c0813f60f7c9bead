// Package adminapi exposes the dashboard CRUD endpoints. All routes are
// registered under /api/admin and sit behind the session JWT plus the admin
// role check enforced by the webserver.
package adminapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Ssnnee/theo-afrique-website/internal/audit"
	"github.com/Ssnnee/theo-afrique-website/internal/webserver"
)

// InitRouter registers all admin routes on the webserver.
func InitRouter() {
	registerProductRoutes()
	registerCategoryRoutes()
	registerAnnouncementRoutes()
	registerLogRoutes()
	registerSettingRoutes()
}

func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetApp(c).DB()
}

func getAudit(c echo.Context) *audit.Logger {
	return audit.NewLogger(GetDB(c))
}

// auditEntry fills the caller metadata from the request; handlers add the
// action and resource.
func auditEntry(c echo.Context, action, resource, resourceID string, details map[string]interface{}) audit.Entry {
	userID := ""
	if claims := webserver.GetSession(c); claims != nil {
		userID = claims.Subject
	}
	return audit.Entry{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
		IPAddress:  c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
	}
}

type apiResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type pagedResponse struct {
	Code     int         `json:"code"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, apiResponse{Code: 0, Data: data})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, pagedResponse{
		Code: 0, Data: rows, Total: total, Page: page, PageSize: pageSize,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, errorResponse{Code: code, Message: message, Detail: detail})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page, pageSize = 1, 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func handleValidationError(c echo.Context, err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", fields)
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", err.Error())
}
