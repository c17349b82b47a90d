package handlers

import (
	"net/http"

	"github.com/KevinKupervaser/demoflores/cart"
	"github.com/KevinKupervaser/demoflores/utils"

	"github.com/gin-gonic/gin"
)

// DrawerHandler drives the checkout drawer of a cart session: review
// pagination, the delivery form step and order submission.
type DrawerHandler struct {
	Sessions *cart.SessionStore
}

func (h *DrawerHandler) session(c *gin.Context) *cart.Session {
	return (&CartHandler{Sessions: h.Sessions}).session(c)
}

func drawerState(session *cart.Session) gin.H {
	return gin.H{
		"open":        session.Drawer.IsOpen(),
		"view":        session.Drawer.View(),
		"page":        session.Drawer.Page(),
		"page_items":  session.Drawer.PageItems(),
		"total_pages": session.Drawer.TotalPages(),
		"total_price": session.Store.TotalPrice(),
		"item_count":  session.Store.ItemCount(),
	}
}

func (h *DrawerHandler) GetDrawer(c *gin.Context) {
	c.JSON(http.StatusOK, drawerState(h.session(c)))
}

func (h *DrawerHandler) OpenDrawer(c *gin.Context) {
	session := h.session(c)
	session.Drawer.Open()
	c.JSON(http.StatusOK, drawerState(session))
}

func (h *DrawerHandler) CloseDrawer(c *gin.Context) {
	session := h.session(c)
	session.Drawer.Close()
	c.JSON(http.StatusOK, drawerState(session))
}

func (h *DrawerHandler) Back(c *gin.Context) {
	session := h.session(c)
	session.Drawer.Back()
	c.JSON(http.StatusOK, drawerState(session))
}

func (h *DrawerHandler) SetPage(c *gin.Context) {
	session := h.session(c)

	var req struct {
		Page int `json:"page" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	session.Drawer.SetPage(req.Page)
	c.JSON(http.StatusOK, drawerState(session))
}

func (h *DrawerHandler) Proceed(c *gin.Context) {
	session := h.session(c)

	if err := session.Drawer.Proceed(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Cart is empty"})
		return
	}
	c.JSON(http.StatusOK, drawerState(session))
}

func (h *DrawerHandler) SubmitOrder(c *gin.Context) {
	session := h.session(c)

	var form cart.DeliveryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if session.Store.Len() == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cart is empty"})
		return
	}

	message, _ := session.Drawer.SubmitOrder(form)

	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"whatsapp_url": session.Drawer.LastLink(),
		"drawer":       drawerState(session),
	})
}
