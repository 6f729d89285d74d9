// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package enrollment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loopspace/backend/internal/platform/middleware"
	requestutil "github.com/loopspace/backend/internal/platform/request"
	"github.com/loopspace/backend/internal/platform/respond"
	"github.com/loopspace/backend/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the learner library.
type Handler struct {
	service *Service
}

// NewHandler constructs a new enrollment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches library endpoints to the root API router.
// Everything here is personal state, so the whole surface requires auth.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)
		user.Get("/library/courses", handler.ListMyCourses)
		user.Post("/courses/{courseID}/enroll", handler.Enroll)
		user.Delete("/courses/{courseID}/enroll", handler.Unenroll)
		user.Get("/courses/{courseID}/progress", handler.GetCourseProgress)
		user.Post("/lessons/{lessonID}/complete", handler.CompleteLesson)
		user.Delete("/lessons/{lessonID}/complete", handler.UncompleteLesson)
	})
}

// # Library

/*
GET /api/v1/library/courses.

Description: Returns the requester's enrolled courses, newest first.

Response:
  - 200: []EnrolledCourse: Paginated list
*/
func (handler *Handler) ListMyCourses(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	courses, total, err := handler.service.ListMyCourses(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, courses, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// # Enrollment

/*
POST /api/v1/courses/{courseID}/enroll.

Description: Joins the requester to a public course. Repeating the call
is harmless.

Response:
  - 201: Enrollment
  - 403: Course not open for enrollment
  - 404: Course not found
  - 409: Requester owns the course
*/
func (handler *Handler) Enroll(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	enrollment, err := handler.service.Enroll(request.Context(), userID, requestutil.ID(request, "courseID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, enrollment)
}

/*
DELETE /api/v1/courses/{courseID}/enroll.

Response:
  - 204: Unenrolled
  - 404: No enrollment exists
*/
func (handler *Handler) Unenroll(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unenroll(request.Context(), userID, requestutil.ID(request, "courseID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Progress

/*
GET /api/v1/courses/{courseID}/progress.

Response:
  - 200: CourseProgress: Totals and completion percentage
  - 403: Not enrolled in the course
  - 404: Course not found
*/
func (handler *Handler) GetCourseProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	progress, err := handler.service.GetCourseProgress(request.Context(), userID, requestutil.ID(request, "courseID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, progress)
}

/*
POST /api/v1/lessons/{lessonID}/complete.

Response:
  - 200: Progress: Lesson marked complete
  - 403: Not enrolled in the course
  - 404: Lesson not found
*/
func (handler *Handler) CompleteLesson(writer http.ResponseWriter, request *http.Request) {
	handler.setProgress(writer, request, true)
}

// UncompleteLesson handles DELETE /api/v1/lessons/{lessonID}/complete,
// reverting the lesson to not completed.
func (handler *Handler) UncompleteLesson(writer http.ResponseWriter, request *http.Request) {
	handler.setProgress(writer, request, false)
}

func (handler *Handler) setProgress(writer http.ResponseWriter, request *http.Request, completed bool) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	progress, err := handler.service.SetLessonProgress(request.Context(), userID, requestutil.ID(request, "lessonID"), completed)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, progress)
}
