package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Ssnnee/theo-afrique-website/internal/audit"
	"github.com/Ssnnee/theo-afrique-website/internal/domain"
	"github.com/Ssnnee/theo-afrique-website/internal/webserver"
)

type categoryPayload struct {
	Name string `json:"name" validate:"required,min=1,max=256"`
}

func registerCategoryRoutes() {
	webserver.ApiGET("/categories", listAdminCategories)
	webserver.ApiPOST("/categories", createCategory)
	webserver.ApiPUT("/categories/:id", updateCategory)
	webserver.ApiDELETE("/categories/:id", deleteCategory)
}

func listAdminCategories(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Category{})
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}

	var rows []domain.Category
	if err := db.Order("name ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	name := strings.TrimSpace(payload.Name)
	var dup int64
	GetDB(c).Model(&domain.Category{}).Where("name = ?", name).Count(&dup)
	if dup > 0 {
		return fail(c, http.StatusConflict, "DUPLICATE_CATEGORY", "Category with this name already exists", nil)
	}

	now := time.Now()
	cat := domain.Category{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := GetDB(c).Create(&cat).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category", err.Error())
	}

	getAudit(c).Log(auditEntry(c, audit.ActionCreate, audit.ResourceCategory,
		strconv.FormatInt(cat.ID, 10), map[string]interface{}{"name": cat.Name}))
	return ok(c, cat)
}

func updateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	var cat domain.Category
	if err := GetDB(c).Where("id = ?", id).First(&cat).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query category", err.Error())
	}

	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	cat.Name = strings.TrimSpace(payload.Name)
	cat.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&cat).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category", err.Error())
	}

	getAudit(c).Log(auditEntry(c, audit.ActionUpdate, audit.ResourceCategory,
		strconv.FormatInt(cat.ID, 10), map[string]interface{}{"name": cat.Name}))
	return ok(c, cat)
}

func deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&domain.ProductToCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&domain.AnnouncementToCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Category{}).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category", err.Error())
	}

	getAudit(c).Log(auditEntry(c, audit.ActionDelete, audit.ResourceCategory,
		strconv.FormatInt(id, 10), nil))
	return ok(c, map[string]interface{}{"id": id})
}
