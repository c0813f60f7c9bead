package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ssnnee/theo-afrique-website/internal/webserver"
)

func registerLogRoutes() {
	webserver.ApiGET("/logs", listAdminLogs)
}

func listAdminLogs(c echo.Context) error {
	page, pageSize := parsePagination(c)
	rows, total, err := getAudit(c).List(page, pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query audit logs", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}
