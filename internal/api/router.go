// internal/api/router.go

// Package api exposes the request/response operations over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	commonerrors "fruitcenter-events/internal/common/errors"
	"fruitcenter-events/internal/common/logger"
	purgenotifications "fruitcenter-events/internal/workers/admin/purge-notifications"
	verificationemail "fruitcenter-events/internal/workers/communication/verification-email"
	createorder "fruitcenter-events/internal/workers/payments/create-order"
	fruitadvisor "fruitcenter-events/internal/workers/suggestions/fruit-advisor"
)

// Service interfaces over the worker handlers, defined here for mocking.
type SuggestionService interface {
	Execute(ctx context.Context, input *fruitadvisor.SuggestionRequest) (*fruitadvisor.SuggestionResponse, error)
}

type PaymentService interface {
	Execute(input *createorder.CreateOrderRequest) (map[string]interface{}, error)
}

type VerificationService interface {
	Execute(ctx context.Context, input *verificationemail.VerificationRequest) (*verificationemail.VerificationResult, error)
}

type PurgeService interface {
	Execute(ctx context.Context) (*purgenotifications.PurgeResult, error)
}

type Services struct {
	Suggestions  SuggestionService
	Payments     PaymentService
	Verification VerificationService
	Purge        PurgeService
}

// NewRouter wires the HTTP surface. Wrong-method requests get a 405 with no
// side effects.
func NewRouter(services Services, log logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.HandleMethodNotAllowed = true

	r := &router{services: services, logger: log.With(map[string]interface{}{"component": "api"})}

	engine.POST("/suggestions", r.createSuggestion)
	engine.POST("/payments/orders", r.createPaymentOrder)
	engine.POST("/auth/verification-code", r.sendVerificationCode)
	engine.GET("/admin/notifications/purge", r.purgeNotifications)
	engine.POST("/admin/notifications/purge", r.purgeNotifications)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}

type router struct {
	services Services
	logger   logger.Logger
}

// rejectBadBody logs a structured validation error and answers 400. No
// handler runs, so a malformed body has no side effects.
func (r *router) rejectBadBody(c *gin.Context, err error) {
	stdErr := commonerrors.NewValidationFailedError(err.Error())
	r.logger.Warn("request body rejected", map[string]interface{}{
		"code":    string(stdErr.Code),
		"path":    c.FullPath(),
		"details": stdErr.Details,
	})
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

func (r *router) createSuggestion(c *gin.Context) {
	var input fruitadvisor.SuggestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		r.rejectBadBody(c, err)
		return
	}

	output, err := r.services.Suggestions.Execute(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, fruitadvisor.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		case errors.Is(err, fruitadvisor.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Completion API key not configured"})
		default:
			r.logger.Error("suggestion request failed", map[string]interface{}{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to call completion API", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, output)
}

func (r *router) createPaymentOrder(c *gin.Context) {
	var input createorder.CreateOrderRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		r.rejectBadBody(c, err)
		return
	}

	order, err := r.services.Payments.Execute(&input)
	if err != nil {
		if errors.Is(err, createorder.ErrAmountRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount is required"})
			return
		}
		r.logger.Error("payment order request failed", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (r *router) sendVerificationCode(c *gin.Context) {
	var input verificationemail.VerificationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		r.rejectBadBody(c, err)
		return
	}

	result, err := r.services.Verification.Execute(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, verificationemail.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and code are required"})
			return
		}
		r.logger.Error("verification email request failed", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send verification email", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (r *router) purgeNotifications(c *gin.Context) {
	result, err := r.services.Purge.Execute(c.Request.Context())
	if err != nil {
		r.logger.Error("notification purge failed", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
