package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	riskconfigdomain "github.com/pvlabs/riskwatch/internal/riskconfig/domain"
)

func (s *Server) GetRiskSettings(c *gin.Context) {
	settings := s.configSvc.Resolve(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": settings})
}

func (s *Server) PutRiskSettings(c *gin.Context) {
	var req riskconfigdomain.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.configSvc.Save(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": req})
}
