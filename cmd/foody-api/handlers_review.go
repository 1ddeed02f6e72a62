package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foody-app/foody-api/internal/httpx"
	"github.com/foody-app/foody-api/internal/review"
)

// @Summary  Reviews of a product
// @Tags     reviews
// @Produce  json
// @Param    productId path  string true  "product id"
// @Param    page      query int    false "page"
// @Param    limit     query int    false "page size"
// @Success  200 {object} map[string]any
// @Router   /api/reviews/product/{productId} [get]
func productReviewsHandler(svc *review.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := httpx.PageFrom(c)
		reviews, total, err := svc.ListByProduct(c.Request.Context(), c.Param("productId"), p.Limit, p.Offset())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"reviews": reviews, "pagination": httpx.NewPagination(p, total)})
	}
}

// @Summary  Review a product from a completed order
// @Tags     reviews
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body review.CreateReviewRequest true "review"
// @Success  201 {object} map[string]any
// @Router   /api/reviews [post]
func createReviewHandler(svc *review.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in review.CreateReviewRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		rv, err := svc.Create(c.Request.Context(), httpx.UserID(c), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusCreated, "review added", gin.H{"review": rv})
	}
}

// @Summary  Own reviews
// @Tags     reviews
// @Produce  json
// @Security BearerAuth
// @Param    page  query int false "page"
// @Param    limit query int false "page size"
// @Success  200 {object} map[string]any
// @Router   /api/reviews/my [get]
func myReviewsHandler(svc *review.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := httpx.PageFrom(c)
		reviews, total, err := svc.ListMine(c.Request.Context(), httpx.UserID(c), p.Limit, p.Offset())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"reviews": reviews, "pagination": httpx.NewPagination(p, total)})
	}
}

// @Summary  Edit a review
// @Tags     reviews
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string true "review id"
// @Param    body body review.UpdateReviewRequest true "changes"
// @Success  200 {object} map[string]any
// @Router   /api/reviews/{id} [put]
func updateReviewHandler(svc *review.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in review.UpdateReviewRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		rv, err := svc.Update(c.Request.Context(), httpx.Actor(c), c.Param("id"), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "review updated", gin.H{"review": rv})
	}
}

// @Summary  Delete a review
// @Tags     reviews
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "review id"
// @Success  200 {object} map[string]any
// @Router   /api/reviews/{id} [delete]
func deleteReviewHandler(svc *review.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), httpx.Actor(c), c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "review deleted", nil)
	}
}
