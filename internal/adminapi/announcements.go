package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Ssnnee/theo-afrique-website/internal/audit"
	"github.com/Ssnnee/theo-afrique-website/internal/domain"
	"github.com/Ssnnee/theo-afrique-website/internal/webserver"
)

type announcementPayload struct {
	Title         string    `json:"title" validate:"required,min=1,max=256"`
	Message       string    `json:"message" validate:"required,min=1"`
	Type          string    `json:"type" validate:"omitempty,oneof=sale promotion info warning"`
	DiscountType  string    `json:"discountType" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue int64     `json:"discountValue" validate:"min=0"`
	StartDate     time.Time `json:"startDate" validate:"required"`
	EndDate       time.Time `json:"endDate" validate:"required"`
	IsActive      *bool     `json:"isActive"`
	Scope         string    `json:"scope" validate:"omitempty,oneof=global category product"`
	Priority      int       `json:"priority"`
	ProductIDs    []int64   `json:"productIds"`
	CategoryIDs   []int64   `json:"categoryIds"`
}

func registerAnnouncementRoutes() {
	webserver.ApiGET("/announcements", listAnnouncements)
	webserver.ApiGET("/announcements/:id", getAnnouncement)
	webserver.ApiPOST("/announcements", createAnnouncement)
	webserver.ApiPUT("/announcements/:id", updateAnnouncement)
	webserver.ApiDELETE("/announcements/:id", deleteAnnouncement)
	webserver.ApiPOST("/announcements/:id/toggle", toggleAnnouncement)
}

func listAnnouncements(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Announcement{})
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query announcements", err.Error())
	}

	var rows []domain.Announcement
	if err := db.Order("priority DESC, created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query announcements", err.Error())
	}
	if err := loadAnnouncementTargets(GetDB(c), rows); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query announcement links", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getAnnouncement(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid announcement ID", nil)
	}
	var a domain.Announcement
	if err := GetDB(c).Where("id = ?", id).First(&a).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Announcement not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query announcement", err.Error())
	}
	rows := []domain.Announcement{a}
	if err := loadAnnouncementTargets(GetDB(c), rows); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query announcement links", err.Error())
	}
	return ok(c, rows[0])
}

func createAnnouncement(c echo.Context) error {
	var payload announcementPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse announcement", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if payload.EndDate.Before(payload.StartDate) {
		return fail(c, http.StatusBadRequest, "INVALID_WINDOW", "endDate must not precede startDate", nil)
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}
	if payload.Type == "" {
		payload.Type = domain.AnnouncementTypeInfo
	}
	if payload.DiscountType == "" {
		payload.DiscountType = domain.DiscountTypePercentage
	}
	if payload.Scope == "" {
		payload.Scope = domain.ScopeGlobal
	}

	now := time.Now()
	a := domain.Announcement{
		Title:         payload.Title,
		Message:       payload.Message,
		Type:          payload.Type,
		DiscountType:  payload.DiscountType,
		DiscountValue: payload.DiscountValue,
		StartDate:     payload.StartDate,
		EndDate:       payload.EndDate,
		IsActive:      isActive,
		Scope:         payload.Scope,
		Priority:      payload.Priority,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		return replaceAnnouncementTargets(tx, &a, payload.ProductIDs, payload.CategoryIDs)
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create announcement", err.Error())
	}

	getAudit(c).Log(auditEntry(c, audit.ActionCreate, audit.ResourceAnnouncement,
		strconv.FormatInt(a.ID, 10), map[string]interface{}{"title": a.Title, "scope": a.Scope}))
	return ok(c, a)
}

func updateAnnouncement(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid announcement ID", nil)
	}
	var a domain.Announcement
	if err := GetDB(c).Where("id = ?", id).First(&a).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Announcement not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query announcement", err.Error())
	}

	var payload announcementPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse announcement", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if payload.EndDate.Before(payload.StartDate) {
		return fail(c, http.StatusBadRequest, "INVALID_WINDOW", "endDate must not precede startDate", nil)
	}

	a.Title = payload.Title
	a.Message = payload.Message
	if payload.Type != "" {
		a.Type = payload.Type
	}
	if payload.DiscountType != "" {
		a.DiscountType = payload.DiscountType
	}
	a.DiscountValue = payload.DiscountValue
	a.StartDate = payload.StartDate
	a.EndDate = payload.EndDate
	if payload.IsActive != nil {
		a.IsActive = *payload.IsActive
	}
	if payload.Scope != "" {
		a.Scope = payload.Scope
	}
	a.Priority = payload.Priority
	a.UpdatedAt = time.Now()

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&a).Error; err != nil {
			return err
		}
		return replaceAnnouncementTargets(tx, &a, payload.ProductIDs, payload.CategoryIDs)
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update announcement", err.Error())
	}

	getAudit(c).Log(auditEntry(c, audit.ActionUpdate, audit.ResourceAnnouncement,
		strconv.FormatInt(a.ID, 10), map[string]interface{}{"title": a.Title, "scope": a.Scope}))
	return ok(c, a)
}

func deleteAnnouncement(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid announcement ID", nil)
	}

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("announcement_id = ?", id).Delete(&domain.AnnouncementToProduct{}).Error; err != nil {
			return err
		}
		if err := tx.Where("announcement_id = ?", id).Delete(&domain.AnnouncementToCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Announcement{}).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete announcement", err.Error())
	}

	getAudit(c).Log(auditEntry(c, audit.ActionDelete, audit.ResourceAnnouncement,
		strconv.FormatInt(id, 10), nil))
	return ok(c, map[string]interface{}{"id": id})
}

// toggleAnnouncement flips the manual kill switch.
func toggleAnnouncement(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid announcement ID", nil)
	}
	var a domain.Announcement
	if err := GetDB(c).Where("id = ?", id).First(&a).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Announcement not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query announcement", err.Error())
	}

	a.IsActive = !a.IsActive
	a.UpdatedAt = time.Now()
	if err := GetDB(c).Model(&domain.Announcement{}).Where("id = ?", a.ID).
		Updates(map[string]interface{}{"is_active": a.IsActive, "updated_at": a.UpdatedAt}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to toggle announcement", err.Error())
	}

	getAudit(c).Log(auditEntry(c, audit.ActionUpdate, audit.ResourceAnnouncement,
		strconv.FormatInt(a.ID, 10), map[string]interface{}{"isActive": a.IsActive}))
	return ok(c, a)
}

// replaceAnnouncementTargets rewrites the targeting join rows. Only the set
// matching the announcement's scope is kept so a scope change cannot leave
// stale links behind.
func replaceAnnouncementTargets(tx *gorm.DB, a *domain.Announcement, productIDs, categoryIDs []int64) error {
	if err := tx.Where("announcement_id = ?", a.ID).Delete(&domain.AnnouncementToProduct{}).Error; err != nil {
		return err
	}
	if err := tx.Where("announcement_id = ?", a.ID).Delete(&domain.AnnouncementToCategory{}).Error; err != nil {
		return err
	}

	switch a.Scope {
	case domain.ScopeProduct:
		for _, pid := range productIDs {
			if err := tx.Create(&domain.AnnouncementToProduct{
				AnnouncementID: a.ID,
				ProductID:      pid,
				CreatedAt:      time.Now(),
			}).Error; err != nil {
				return err
			}
		}
		a.TargetProductIDs = productIDs
	case domain.ScopeCategory:
		for _, cid := range categoryIDs {
			if err := tx.Create(&domain.AnnouncementToCategory{
				AnnouncementID: a.ID,
				CategoryID:     cid,
				CreatedAt:      time.Now(),
			}).Error; err != nil {
				return err
			}
		}
		a.TargetCategoryIDs = categoryIDs
	}
	return nil
}

// loadAnnouncementTargets resolves targeting sets for a listing.
func loadAnnouncementTargets(db *gorm.DB, anns []domain.Announcement) error {
	if len(anns) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(anns))
	index := make(map[int64]*domain.Announcement, len(anns))
	for i := range anns {
		ids = append(ids, anns[i].ID)
		index[anns[i].ID] = &anns[i]
	}

	var productLinks []domain.AnnouncementToProduct
	if err := db.Where("announcement_id IN ?", ids).Find(&productLinks).Error; err != nil {
		return err
	}
	for _, link := range productLinks {
		a := index[link.AnnouncementID]
		a.TargetProductIDs = append(a.TargetProductIDs, link.ProductID)
	}

	var categoryLinks []domain.AnnouncementToCategory
	if err := db.Where("announcement_id IN ?", ids).Find(&categoryLinks).Error; err != nil {
		return err
	}
	for _, link := range categoryLinks {
		a := index[link.AnnouncementID]
		a.TargetCategoryIDs = append(a.TargetCategoryIDs, link.CategoryID)
	}
	return nil
}
