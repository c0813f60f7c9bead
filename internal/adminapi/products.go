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

type productPayload struct {
	Name        string   `json:"name" validate:"required,min=2,max=256"`
	Description string   `json:"description" validate:"required,min=10,max=512"`
	Price       int64    `json:"price" validate:"min=0"`
	ImageURL    string   `json:"imageUrl" validate:"required,url"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Stock       int      `json:"stock" validate:"min=0"`
	CategoryIDs []int64  `json:"categoryIds"`
}

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listAdminProducts)
	webserver.ApiGET("/products/:id", getAdminProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listAdminProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	// Sorting: whitelist allowed columns to avoid SQL injection
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"price":      "price",
		"stock":      "stock",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	sortCol, found := allowed[sortField]
	if !found {
		sortCol = "id"
	}

	db := GetDB(c).Model(&domain.Product{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getAdminProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	var links []domain.ProductToCategory
	if err := GetDB(c).Where("product_id = ?", id).Find(&links).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product categories", err.Error())
	}
	categoryIDs := make([]int64, 0, len(links))
	for _, link := range links {
		categoryIDs = append(categoryIDs, link.CategoryID)
	}

	return ok(c, map[string]interface{}{"product": p, "categoryIds": categoryIDs})
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	now := time.Now()
	p := domain.Product{
		Name:        strings.TrimSpace(payload.Name),
		Description: payload.Description,
		Price:       payload.Price,
		ImageURL:    strings.TrimSpace(payload.ImageURL),
		Sizes:       payload.Sizes,
		Colors:      payload.Colors,
		Stock:       payload.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		return replaceProductCategories(tx, p.ID, payload.CategoryIDs)
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}

	getAudit(c).Log(auditEntry(c, audit.ActionCreate, audit.ResourceProduct,
		strconv.FormatInt(p.ID, 10), map[string]interface{}{"name": p.Name}))
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	p.Name = strings.TrimSpace(payload.Name)
	p.Description = payload.Description
	p.Price = payload.Price
	p.ImageURL = strings.TrimSpace(payload.ImageURL)
	p.Sizes = payload.Sizes
	p.Colors = payload.Colors
	p.Stock = payload.Stock
	p.UpdatedAt = time.Now()

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		if payload.CategoryIDs != nil {
			return replaceProductCategories(tx, p.ID, payload.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}

	getAudit(c).Log(auditEntry(c, audit.ActionUpdate, audit.ResourceProduct,
		strconv.FormatInt(p.ID, 10), map[string]interface{}{"name": p.Name}))
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductToCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.AnnouncementToProduct{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Product{}).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}

	getAudit(c).Log(auditEntry(c, audit.ActionDelete, audit.ResourceProduct,
		strconv.FormatInt(id, 10), nil))
	return ok(c, map[string]interface{}{"id": id})
}

// replaceProductCategories rewrites the category links of a product.
func replaceProductCategories(tx *gorm.DB, productID int64, categoryIDs []int64) error {
	if err := tx.Where("product_id = ?", productID).Delete(&domain.ProductToCategory{}).Error; err != nil {
		return err
	}
	for _, cid := range categoryIDs {
		if err := tx.Create(&domain.ProductToCategory{
			ProductID:  productID,
			CategoryID: cid,
			CreatedAt:  time.Now(),
		}).Error; err != nil {
			return err
		}
	}
	return nil
}
