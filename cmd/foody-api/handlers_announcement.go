package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foody-app/foody-api/internal/announcement"
	"github.com/foody-app/foody-api/internal/httpx"
)

// @Summary  Live announcements
// @Tags     announcements
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/announcements [get]
func publicAnnouncementsHandler(svc *announcement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListPublic(c.Request.Context())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"announcements": items, "count": len(items)})
	}
}

// @Summary  All announcements (admin)
// @Tags     announcements
// @Produce  json
// @Security BearerAuth
// @Param    page  query int false "page"
// @Param    limit query int false "page size"
// @Success  200 {object} map[string]any
// @Router   /api/announcements/all [get]
func allAnnouncementsHandler(svc *announcement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := httpx.PageFrom(c)
		items, total, err := svc.ListAll(c.Request.Context(), p.Limit, p.Offset())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"announcements": items, "pagination": httpx.NewPagination(p, total)})
	}
}

// @Summary  Publish an announcement (admin)
// @Tags     announcements
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body announcement.CreateRequest true "announcement"
// @Success  201 {object} map[string]any
// @Router   /api/announcements [post]
func createAnnouncementHandler(svc *announcement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in announcement.CreateRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		a, err := svc.Create(c.Request.Context(), httpx.UserID(c), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusCreated, "announcement created", gin.H{"announcement": a})
	}
}

// @Summary  Update an announcement (admin)
// @Tags     announcements
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string true "announcement id"
// @Param    body body announcement.UpdateRequest true "changes"
// @Success  200 {object} map[string]any
// @Router   /api/announcements/{id} [put]
func updateAnnouncementHandler(svc *announcement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in announcement.UpdateRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		a, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "announcement updated", gin.H{"announcement": a})
	}
}

// @Summary  Delete an announcement (admin)
// @Tags     announcements
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "announcement id"
// @Success  200 {object} map[string]any
// @Router   /api/announcements/{id} [delete]
func deleteAnnouncementHandler(svc *announcement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "announcement deleted", nil)
	}
}
