package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foody-app/foody-api/internal/httpx"
	"github.com/foody-app/foody-api/internal/order"
	"github.com/foody-app/foody-api/internal/report"
)

// exportLimit caps the orders written to one spreadsheet.
const exportLimit = 100

func orderFilter(c *gin.Context) (order.Filter, httpx.PageQuery, error) {
	var q order.ListQuery
	if err := httpx.BindQuery(c, &q); err != nil {
		return order.Filter{}, httpx.PageQuery{}, err
	}
	p := httpx.PageFrom(c)
	return order.Filter{
		Status: order.Status(q.Status),
		Paid:   q.Paid,
		Table:  q.Table,
		Limit:  p.Limit,
		Offset: p.Offset(),
	}, p, nil
}

// @Summary  Place an order from the cart
// @Tags     orders
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body order.CreateOrderRequest true "checkout"
// @Success  201 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Router   /api/orders [post]
func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.CreateOrderRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		o, err := svc.Create(c.Request.Context(), httpx.UserID(c), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusCreated, "order placed successfully", gin.H{"order": o})
	}
}

// @Summary  Own orders
// @Tags     orders
// @Produce  json
// @Security BearerAuth
// @Param    page  query int false "page"
// @Param    limit query int false "page size"
// @Success  200 {object} map[string]any
// @Router   /api/orders/my [get]
func myOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := httpx.PageFrom(c)
		orders, total, err := svc.ListMine(c.Request.Context(), httpx.UserID(c), p.Limit, p.Offset())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"orders": orders, "pagination": httpx.NewPagination(p, total)})
	}
}

// @Summary  List all orders (staff)
// @Tags     orders
// @Produce  json
// @Security BearerAuth
// @Param    status query string false "status"
// @Param    paid   query bool   false "paid flag"
// @Param    table  query int    false "table number"
// @Param    page   query int    false "page"
// @Param    limit  query int    false "page size"
// @Success  200 {object} map[string]any
// @Router   /api/orders [get]
func listOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, p, err := orderFilter(c)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		orders, total, err := svc.List(c.Request.Context(), f)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"orders": orders, "pagination": httpx.NewPagination(p, total)})
	}
}

// @Summary  Export orders as a spreadsheet
// @Tags     orders
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Router   /api/orders/export [get]
func exportOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, _, err := orderFilter(c)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		f.Limit, f.Offset = exportLimit, 0
		orders, _, err := svc.List(c.Request.Context(), f)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		name := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102-150405"))
		c.Header("Content-Type", report.ContentTypeXLSX)
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
		c.Status(http.StatusOK)
		if err := report.WriteOrders(c.Writer, orders); err != nil {
			log.Printf("[export] orders=%d err=%v", len(orders), err)
		}
	}
}

// @Summary  Get an order
// @Tags     orders
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "order id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /api/orders/{id} [get]
func getOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), httpx.Actor(c), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"order": o})
	}
}

// @Summary  Change order status (staff)
// @Tags     orders
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string true "order id"
// @Param    body body order.UpdateStatusRequest true "status"
// @Success  200 {object} map[string]any
// @Router   /api/orders/{id}/status [put]
func updateOrderStatusHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.UpdateStatusRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		o, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "order status updated", gin.H{"order": o})
	}
}
