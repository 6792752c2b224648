package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	snapshotdomain "github.com/pvlabs/riskwatch/internal/snapshot/domain"
	"github.com/pvlabs/riskwatch/pkg/db/pagination"
)

type refreshRequest struct {
	CustomerIDs []string `json:"customer_ids"`
}

// RefreshDebtorKPIs is the manual refresh entry point. An empty body
// refreshes every commercial customer with sales history.
func (s *Server) RefreshDebtorKPIs(c *gin.Context) {
	var req refreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	report, err := s.snapshotSvc.Refresh(c.Request.Context(), snapshotdomain.RefreshRequest{
		CustomerIDs: req.CustomerIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (s *Server) ListDebtorKPIs(c *gin.Context) {
	var query struct {
		pagination.Pagination
		RiskLevel string `form:"risk_level"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.snapshotSvc.List(c.Request.Context(), snapshotdomain.ListRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		RiskLevel: strings.TrimSpace(query.RiskLevel),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
