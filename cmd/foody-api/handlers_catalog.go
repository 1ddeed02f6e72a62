package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/category"
	"github.com/foody-app/foody-api/internal/httpx"
	"github.com/foody-app/foody-api/internal/product"
	"github.com/foody-app/foody-api/internal/upload"
)

var errNoImage = apperr.Validation("please upload an image")

// @Summary  List categories
// @Tags     categories
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/categories [get]
// @Router   /api/categories/all [get]
func listCategoriesHandler(svc *category.Service, all bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := svc.List(c.Request.Context(), all)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"categories": cats, "count": len(cats)})
	}
}

// @Summary  Get a category
// @Tags     categories
// @Produce  json
// @Param    id path string true "category id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /api/categories/{id} [get]
func getCategoryHandler(svc *category.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"category": cat})
	}
}

// @Summary  Create category
// @Tags     categories
// @Accept   json,mpfd
// @Produce  json
// @Security BearerAuth
// @Param    body body category.CreateCategoryRequest true "category"
// @Success  201 {object} map[string]any
// @Router   /api/categories [post]
func createCategoryHandler(svc *category.Service, uploads *upload.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in category.CreateCategoryRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		image, err := uploads.FromForm(c, "image")
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		cat, err := svc.Create(c.Request.Context(), in, image)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusCreated, "category created", gin.H{"category": cat})
	}
}

// @Summary  Update category
// @Tags     categories
// @Accept   json,mpfd
// @Produce  json
// @Security BearerAuth
// @Param    id   path string true "category id"
// @Param    body body category.UpdateCategoryRequest true "changes"
// @Success  200 {object} map[string]any
// @Router   /api/categories/{id} [put]
func updateCategoryHandler(svc *category.Service, uploads *upload.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in category.UpdateCategoryRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		image, err := uploads.FromForm(c, "image")
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		cat, err := svc.Update(c.Request.Context(), c.Param("id"), in, image)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "category updated", gin.H{"category": cat})
	}
}

// @Summary  Delete category
// @Tags     categories
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "category id"
// @Success  200 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Router   /api/categories/{id} [delete]
func deleteCategoryHandler(svc *category.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "category deleted", nil)
	}
}

// @Summary  List menu items
// @Tags     products
// @Produce  json
// @Param    search    query string false "name or description contains"
// @Param    category  query string false "category id"
// @Param    available query bool   false "availability"
// @Param    sort      query string false "newest, price_asc, price_desc, rating"
// @Param    page      query int    false "page"
// @Param    limit     query int    false "page size"
// @Success  200 {object} map[string]any
// @Router   /api/products [get]
func listProductsHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q product.ListQuery
		if err := httpx.BindQuery(c, &q); err != nil {
			httpx.Fail(c, err)
			return
		}
		p := httpx.PageFrom(c)
		items, total, err := svc.List(c.Request.Context(), product.Query{
			Search:     q.Search,
			CategoryID: q.CategoryID,
			Available:  q.Available,
			Sort:       q.Sort,
			Limit:      p.Limit,
			Offset:     p.Offset(),
		})
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"products": items, "pagination": httpx.NewPagination(p, total)})
	}
}

// @Summary  Get a menu item
// @Tags     products
// @Produce  json
// @Param    id path string true "product id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /api/products/{id} [get]
func getProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"product": p})
	}
}

// @Summary  Create menu item
// @Tags     products
// @Accept   json,mpfd
// @Produce  json
// @Security BearerAuth
// @Param    body body product.CreateProductRequest true "product"
// @Success  201 {object} map[string]any
// @Router   /api/products [post]
func createProductHandler(svc *product.Service, uploads *upload.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.CreateProductRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		image, err := uploads.FromForm(c, "image")
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		p, err := svc.Create(c.Request.Context(), in, image)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusCreated, "product created", gin.H{"product": p})
	}
}

// @Summary  Update menu item
// @Tags     products
// @Accept   json,mpfd
// @Produce  json
// @Security BearerAuth
// @Param    id   path string true "product id"
// @Param    body body product.UpdateProductRequest true "changes"
// @Success  200 {object} map[string]any
// @Router   /api/products/{id} [put]
func updateProductHandler(svc *product.Service, uploads *upload.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.UpdateProductRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		image, err := uploads.FromForm(c, "image")
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		p, err := svc.Update(c.Request.Context(), c.Param("id"), in, image)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "product updated", gin.H{"product": p})
	}
}

// @Summary  Toggle menu item availability (staff)
// @Tags     products
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string true "product id"
// @Param    body body product.AvailabilityRequest true "availability"
// @Success  200 {object} map[string]any
// @Router   /api/products/{id}/availability [patch]
func availabilityHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.AvailabilityRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		p, err := svc.SetAvailability(c.Request.Context(), c.Param("id"), *in.Available)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "availability updated", gin.H{"product": p})
	}
}

// @Summary  Delete menu item
// @Tags     products
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "product id"
// @Success  200 {object} map[string]any
// @Router   /api/products/{id} [delete]
func deleteProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "product deleted", nil)
	}
}
