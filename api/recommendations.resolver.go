package api

import (
	"finplan/internal/domain"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RecommendationsRequest struct {
	Allocation  domain.Allocation `json:"allocation"`
	RiskProfile string            `json:"riskProfile"`
}

type RecommendationsResponse struct {
	Recommendations []domain.Recommendation `json:"recommendations"`
	IsLiveData      bool                    `json:"isLiveData"`
}

func (h ApiHandler) recommendations(c *gin.Context) {
	var requestBody RecommendationsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	if len(requestBody.Allocation) == 0 {
		returnErrorJsonCode(fmt.Errorf("allocation must not be empty"), c, http.StatusBadRequest)
		return
	}

	recommendations, isLive := h.RecommendationService.SuggestFunds(
		c.Request.Context(),
		requestBody.Allocation,
		requestBody.RiskProfile,
	)

	c.JSON(200, RecommendationsResponse{
		Recommendations: recommendations,
		IsLiveData:      isLive,
	})
}
