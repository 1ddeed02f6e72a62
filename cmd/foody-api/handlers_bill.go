package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foody-app/foody-api/internal/bill"
	"github.com/foody-app/foody-api/internal/httpx"
)

// billCreated answers 201 for a new bill and 200 when an existing one is returned.
func billCreated(c *gin.Context, b *bill.Bill, created bool, newMsg, oldMsg string) {
	if created {
		httpx.Message(c, http.StatusCreated, newMsg, gin.H{"bill": b})
		return
	}
	httpx.Message(c, http.StatusOK, oldMsg, gin.H{"bill": b})
}

// @Summary  Ask for the bill of an order
// @Tags     bills
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body bill.RequestBillRequest true "request"
// @Success  201 {object} map[string]any
// @Router   /api/bills/request [post]
func requestBillHandler(svc *bill.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in bill.RequestBillRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		b, created, err := svc.Request(c.Request.Context(), httpx.Actor(c), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		billCreated(c, b, created, "bill requested, a waiter will be with you shortly", "bill already exists for this order")
	}
}

// @Summary  Own bills
// @Tags     bills
// @Produce  json
// @Security BearerAuth
// @Param    page  query int false "page"
// @Param    limit query int false "page size"
// @Success  200 {object} map[string]any
// @Router   /api/bills/my [get]
func myBillsHandler(svc *bill.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := httpx.PageFrom(c)
		bills, total, err := svc.ListMine(c.Request.Context(), httpx.UserID(c), p.Limit, p.Offset())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"bills": bills, "pagination": httpx.NewPagination(p, total)})
	}
}

// @Summary  Bill of an order
// @Tags     bills
// @Produce  json
// @Security BearerAuth
// @Param    orderId path string true "order id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /api/bills/order/{orderId} [get]
func billByOrderHandler(svc *bill.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svc.GetByOrder(c.Request.Context(), httpx.Actor(c), c.Param("orderId"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"bill": b})
	}
}

// @Summary  Generate the bill of an order (staff)
// @Tags     bills
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body bill.GenerateRequest true "order"
// @Success  201 {object} map[string]any
// @Success  200 {object} map[string]any
// @Router   /api/bills/generate [post]
func generateBillHandler(svc *bill.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in bill.GenerateRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		b, created, err := svc.Generate(c.Request.Context(), httpx.Actor(c), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		billCreated(c, b, created, "bill generated successfully", "bill already exists for this order")
	}
}

// @Summary  List bills (staff)
// @Tags     bills
// @Produce  json
// @Security BearerAuth
// @Param    status query string false "generated, requested or paid"
// @Param    paid   query bool   false "paid flag"
// @Param    page   query int    false "page"
// @Param    limit  query int    false "page size"
// @Success  200 {object} map[string]any
// @Router   /api/bills [get]
func listBillsHandler(svc *bill.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q bill.ListQuery
		if err := httpx.BindQuery(c, &q); err != nil {
			httpx.Fail(c, err)
			return
		}
		p := httpx.PageFrom(c)
		bills, total, err := svc.List(c.Request.Context(), bill.Filter{
			Status: bill.Status(q.Status),
			Paid:   q.Paid,
			Limit:  p.Limit,
			Offset: p.Offset(),
		})
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"bills": bills, "pagination": httpx.NewPagination(p, total)})
	}
}

// @Summary  Unpaid bills (staff)
// @Tags     bills
// @Produce  json
// @Security BearerAuth
// @Param    page  query int false "page"
// @Param    limit query int false "page size"
// @Success  200 {object} map[string]any
// @Router   /api/bills/pending [get]
func pendingBillsHandler(svc *bill.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := httpx.PageFrom(c)
		bills, total, err := svc.ListPending(c.Request.Context(), p.Limit, p.Offset())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"bills": bills, "pagination": httpx.NewPagination(p, total)})
	}
}

// @Summary  Get a bill
// @Tags     bills
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "bill id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /api/bills/{id} [get]
func getBillHandler(svc *bill.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svc.Get(c.Request.Context(), httpx.Actor(c), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"bill": b})
	}
}

// @Summary  Mark a bill paid (staff)
// @Tags     bills
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string true "bill id"
// @Param    body body bill.PayRequest false "method"
// @Success  200 {object} map[string]any
// @Router   /api/bills/{id}/pay [put]
func payBillHandler(svc *bill.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in bill.PayRequest
		if c.Request.ContentLength > 0 {
			if err := httpx.Bind(c, &in); err != nil {
				httpx.Fail(c, err)
				return
			}
		}
		b, err := svc.Pay(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "payment recorded", gin.H{"bill": b})
	}
}
