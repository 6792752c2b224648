package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pvlabs/riskwatch/internal/orderguard"
)

// GetQuoteAdvisory is the quote-entry hook. It returns the advisory message
// for the selected customer, or no content when there is nothing to warn
// about.
func (s *Server) GetQuoteAdvisory(c *gin.Context) {
	customerID := strings.TrimSpace(c.Query("customer_id"))
	if customerID == "" {
		AbortWithError(c, newValidationError("customer_id", "missing_customer_id", "customer_id is required"))
		return
	}

	advisory, err := s.guardSvc.QuoteAdvisory(c.Request.Context(), customerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if advisory == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": advisory})
}

type confirmRequest struct {
	OrderIDs       []string `json:"order_ids"`
	ActorIsManager bool     `json:"actor_is_manager"`
}

// ConfirmOrders is the confirmation hook. The host system calls it before
// confirming; a blocked verdict comes back as 422 with the offending
// customer names.
func (s *Server) ConfirmOrders(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.OrderIDs) == 0 {
		AbortWithError(c, newValidationError("order_ids", "missing_order_ids", "order_ids is required"))
		return
	}

	verdict, err := s.guardSvc.CheckConfirm(c.Request.Context(), orderguard.ConfirmRequest{
		OrderIDs:       req.OrderIDs,
		ActorIsManager: req.ActorIsManager,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": verdict})
}
