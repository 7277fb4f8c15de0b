package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studypulse-backend/internal/logger"
	"github.com/yungbote/studypulse-backend/internal/requestdata"
	"github.com/yungbote/studypulse-backend/internal/services"
)

type SessionHandler struct {
	log            *logger.Logger
	sessionService services.StudySessionService
}

func NewSessionHandler(log *logger.Logger, sessionService services.StudySessionService) *SessionHandler {
	return &SessionHandler{
		log:            log.With("handler", "SessionHandler"),
		sessionService: sessionService,
	}
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	sessions, err := h.sessionService.GetUserSessions(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("ListSessions failed", "error", err, "user_id", rd.UserID)
		RespondError(c, http.StatusInternalServerError, "load_sessions_failed", err)
		return
	}
	RespondOK(c, gin.H{"sessions": sessions})
}

func (h *SessionHandler) LogSession(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		CourseID     string  `json:"course_id" binding:"required"`
		HoursStudied float64 `json:"hours_studied" binding:"min=0"`
		Note         string  `json:"note"`
		SessionDate  string  `json:"session_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	var sessionDate time.Time
	if req.SessionDate != "" {
		sessionDate, err = time.Parse(dateLayout, req.SessionDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_session_date", fmt.Errorf("session_date must be formatted as %s", dateLayout))
			return
		}
	}
	session, err := h.sessionService.LogSession(c.Request.Context(), rd.UserID, courseID, req.HoursStudied, req.Note, sessionDate)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		RespondError(c, http.StatusBadRequest, "log_session_failed", err)
		return
	}
	RespondOK(c, gin.H{"session": session})
}
