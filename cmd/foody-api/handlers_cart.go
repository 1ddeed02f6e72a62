package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foody-app/foody-api/internal/cart"
	"github.com/foody-app/foody-api/internal/httpx"
)

func cartResponse(c *gin.Context, status int, msg string, ct *cart.Cart) {
	payload := gin.H{"cart": ct.View()}
	if msg == "" {
		httpx.OK(c, status, payload)
		return
	}
	httpx.Message(c, status, msg, payload)
}

// @Summary  Current cart
// @Tags     cart
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} map[string]any
// @Router   /api/cart [get]
func getCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, err := svc.Get(c.Request.Context(), httpx.UserID(c))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		cartResponse(c, http.StatusOK, "", ct)
	}
}

// @Summary  Add item to cart
// @Tags     cart
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body cart.AddItemRequest true "item"
// @Success  200 {object} map[string]any
// @Router   /api/cart/items [post]
func addCartItemHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cart.AddItemRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		ct, err := svc.Add(c.Request.Context(), httpx.UserID(c), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		cartResponse(c, http.StatusOK, "item added to cart", ct)
	}
}

// @Summary  Set item quantity
// @Tags     cart
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    productId path string true "product id"
// @Param    body      body cart.SetQuantityRequest true "quantity"
// @Success  200 {object} map[string]any
// @Router   /api/cart/items/{productId} [put]
func setCartItemHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cart.SetQuantityRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		ct, err := svc.SetQuantity(c.Request.Context(), httpx.UserID(c), c.Param("productId"), in.Quantity)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		cartResponse(c, http.StatusOK, "cart updated", ct)
	}
}

// @Summary  Remove item from cart
// @Tags     cart
// @Produce  json
// @Security BearerAuth
// @Param    productId path string true "product id"
// @Success  200 {object} map[string]any
// @Router   /api/cart/items/{productId} [delete]
func removeCartItemHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, err := svc.Remove(c.Request.Context(), httpx.UserID(c), c.Param("productId"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		cartResponse(c, http.StatusOK, "item removed from cart", ct)
	}
}

// @Summary  Empty the cart
// @Tags     cart
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} map[string]any
// @Router   /api/cart [delete]
func clearCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, err := svc.Clear(c.Request.Context(), httpx.UserID(c))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		cartResponse(c, http.StatusOK, "cart cleared", ct)
	}
}
