package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/pvlabs/riskwatch/internal/customer/domain"
)

// GetCustomerRisk recomputes the live risk snapshot for one customer.
// Read-only: the persisted KPI table is never touched.
func (s *Server) GetCustomerRisk(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	resp, err := s.customerSvc.LiveRisk(c.Request.Context(), customerdomain.LiveRiskRequest{CustomerID: id})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
