package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/henriquelv/rottava-agro-pet-sub001/internal/domain"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/services"
)

const orderCacheTTL = 10 * time.Second

type Handler struct {
	service *services.PaymentService
	rdb     *redis.Client
	logger  *slog.Logger
}

func NewHandler(s *services.PaymentService, rdb *redis.Client, logger *slog.Logger) *Handler {
	return &Handler{service: s, rdb: rdb, logger: logger}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/checkout", h.Checkout)
	r.GET("/pagamentos/:paymentId", h.GetPayment)
	r.POST("/pagamentos/:paymentId/captura", h.CapturePayment)
	r.POST("/pagamentos/:paymentId/cancelamento", h.CancelPayment)
	r.GET("/pedidos/:orderId", h.GetOrder)
}

func (h *Handler) Checkout(c *gin.Context) {
	var req domain.Checkout
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.service.ProcessPayment(c.Request.Context(), req)
	if !res.Success {
		c.JSON(statusFromResult(res), res)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetPayment(c *gin.Context) {
	res := h.service.GetPayment(c.Request.Context(), c.Param("paymentId"))
	if !res.Success {
		c.JSON(statusFromResult(res), res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CapturePayment(c *gin.Context) {
	amount, ok := h.bindAmount(c)
	if !ok {
		return
	}
	res := h.service.CapturePayment(c.Request.Context(), c.Param("paymentId"), amount)
	if !res.Success {
		c.JSON(statusFromResult(res), res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CancelPayment(c *gin.Context) {
	amount, ok := h.bindAmount(c)
	if !ok {
		return
	}
	res := h.service.CancelPayment(c.Request.Context(), c.Param("paymentId"), amount)
	if !res.Success {
		c.JSON(statusFromResult(res), res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	ctx := c.Request.Context()
	cacheKey := "pedido:" + orderID

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var order domain.Order
			if err := json.Unmarshal([]byte(b), &order); err == nil {
				c.JSON(http.StatusOK, order)
				return
			}
		}
	}

	order, err := h.service.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pedido não encontrado"})
			return
		}
		h.logger.Error("order fetch failed", "orderId", orderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno"})
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(order); err == nil {
			h.rdb.Set(ctx, cacheKey, data, orderCacheTTL)
		}
	}
	c.JSON(http.StatusOK, order)
}

// bindAmount reads the optional partial-amount body; empty body means full
// amount.
func (h *Handler) bindAmount(c *gin.Context) (*float64, bool) {
	if c.Request.ContentLength == 0 {
		return nil, true
	}
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return req.Amount, true
}

// statusFromResult translates the failure envelope into a response code:
// vendor client errors surface as 422, everything else as 502.
func statusFromResult(res domain.PaymentResult) int {
	if res.StatusCode >= 500 {
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}
