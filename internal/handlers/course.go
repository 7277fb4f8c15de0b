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

const dateLayout = "2006-01-02"

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courses, err := h.courseService.GetUserCourses(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("ListCourses failed", "error", err, "user_id", rd.UserID)
		RespondError(c, http.StatusInternalServerError, "load_courses_failed", err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		Name               string  `json:"name" binding:"required"`
		TotalHoursRequired float64 `json:"total_hours_required" binding:"min=0"`
		Deadline           string  `json:"deadline" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	deadline, err := time.Parse(dateLayout, req.Deadline)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_deadline", fmt.Errorf("deadline must be formatted as %s", dateLayout))
		return
	}
	course, err := h.courseService.CreateCourse(c.Request.Context(), rd.UserID, req.Name, req.TotalHoursRequired, deadline)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_course_failed", err)
		return
	}
	RespondOK(c, gin.H{"course": course})
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	course, err := h.courseService.DeleteCourse(c.Request.Context(), rd.UserID, courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		h.log.Error("DeleteCourse failed", "error", err, "user_id", rd.UserID, "course_id", courseID)
		RespondError(c, http.StatusInternalServerError, "delete_course_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": fmt.Sprintf("Course '%s' deleted successfully", course.Name)})
}
