package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studypulse-backend/internal/logger"
	"github.com/yungbote/studypulse-backend/internal/requestdata"
	"github.com/yungbote/studypulse-backend/internal/services"
)

type DashboardHandler struct {
	log             *logger.Logger
	analysisService services.AnalysisService
}

func NewDashboardHandler(log *logger.Logger, analysisService services.AnalysisService) *DashboardHandler {
	return &DashboardHandler{
		log:             log.With("handler", "DashboardHandler"),
		analysisService: analysisService,
	}
}

// GetDashboard returns the full per-course risk analysis for the
// authenticated user. AI-provider failures never surface here; they
// degrade individual course narratives inside the analysis service.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	records, err := h.analysisService.AnalyzeUserCourses(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("Dashboard analysis failed", "error", err, "user_id", rd.UserID)
		RespondError(c, http.StatusInternalServerError, "analysis_failed", err)
		return
	}
	RespondOK(c, gin.H{"user_id": rd.UserID, "courses": records})
}
