package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
	"github.com/Ssnnee/theo-afrique-website/internal/webserver"
)

type settingPayload struct {
	Type  string `json:"type" validate:"required,min=1,max=64"`
	Name  string `json:"name" validate:"required,min=1,max=64"`
	Value string `json:"value"`
}

func registerSettingRoutes() {
	webserver.ApiGET("/settings", listSettings)
	webserver.ApiPUT("/settings", updateSetting)
}

func listSettings(c echo.Context) error {
	var rows []domain.Setting
	if err := GetDB(c).Order("sort ASC, id ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query settings", err.Error())
	}
	return ok(c, rows)
}

func updateSetting(c echo.Context) error {
	var payload settingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse setting", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	if err := webserver.GetApp(c).SetSettingsValue(payload.Type, payload.Name, payload.Value); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update setting", err.Error())
	}
	return ok(c, payload)
}
