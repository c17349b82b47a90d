package handlers

import (
	"net/http"

	"github.com/KevinKupervaser/demoflores/cart"
	"github.com/KevinKupervaser/demoflores/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "cart_session"

// sessionCookieMaxAge matches the registry's idle TTL (seconds).
const sessionCookieMaxAge = 24 * 60 * 60

type CartHandler struct {
	Sessions *cart.SessionStore
}

// session resolves the caller's cart session from the cookie, creating a
// session (and setting the cookie) for first-time visitors.
func (h *CartHandler) session(c *gin.Context) *cart.Session {
	id := uuid.Nil
	if raw, err := c.Cookie(sessionCookie); err == nil {
		if parsed, err := uuid.Parse(raw); err == nil {
			id = parsed
		}
	}

	session := h.Sessions.Get(id)
	if session.ID != id {
		c.SetCookie(sessionCookie, session.ID.String(), sessionCookieMaxAge, "/", "", false, true)
	}
	return session
}

func (h *CartHandler) GetCart(c *gin.Context) {
	session := h.session(c)

	c.JSON(http.StatusOK, gin.H{
		"items":       session.Store.Items(),
		"total_price": session.Store.TotalPrice(),
		"item_count":  session.Store.ItemCount(),
	})
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	session := h.session(c)

	var req struct {
		ID          string  `json:"id" binding:"required"`
		Title       string  `json:"title" binding:"required"`
		Category    string  `json:"category"`
		Thumbnail   string  `json:"thumbnail"`
		Price       float64 `json:"price" binding:"min=0"`
		Sale        float64 `json:"sale"`
		Description string  `json:"description"`
		Quantity    int     `json:"quantity" binding:"omitempty,min=1"`
		Stock       bool    `json:"stock"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	session.Store.AddToCart(cart.LineItem{
		ID:          req.ID,
		Title:       req.Title,
		Category:    req.Category,
		Thumbnail:   req.Thumbnail,
		Price:       req.Price,
		Sale:        req.Sale,
		Description: req.Description,
		Stock:       req.Stock,
	}, quantity)

	c.JSON(http.StatusOK, gin.H{
		"items":       session.Store.Items(),
		"total_price": session.Store.TotalPrice(),
		"item_count":  session.Store.ItemCount(),
	})
}

func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	session := h.session(c)

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	session.Store.UpdateQuantity(c.Param("id"), req.Delta)

	c.JSON(http.StatusOK, gin.H{
		"items":       session.Store.Items(),
		"total_price": session.Store.TotalPrice(),
		"item_count":  session.Store.ItemCount(),
	})
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	session := h.session(c)

	session.Store.RemoveFromCart(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"items":       session.Store.Items(),
		"total_price": session.Store.TotalPrice(),
		"item_count":  session.Store.ItemCount(),
	})
}
