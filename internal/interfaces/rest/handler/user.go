package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/course-platform/internal/enrollment"
	"github.com/pot-code/course-platform/internal/infrastructure/validate"
	"github.com/pot-code/course-platform/internal/progress"
)

// UserHandler learner facing endpoints, the user is identified by the userId parameter
type UserHandler struct {
	EnrollmentUseCase enrollment.EnrollmentUseCase
	ProgressUseCase   progress.ProgressUseCase
	Validator         validate.Validator
}

func NewUserHandler(
	EnrollmentUseCase enrollment.EnrollmentUseCase,
	ProgressUseCase progress.ProgressUseCase,
	Validator validate.Validator,
) *UserHandler {
	return &UserHandler{EnrollmentUseCase, ProgressUseCase, Validator}
}

// HandleListEnrollments enrolled courses with progress
func (uh *UserHandler) HandleListEnrollments(c echo.Context) (err error) {
	courses, err := uh.EnrollmentUseCase.ListEnrolledCourses(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

func (uh *UserHandler) HandleCourseProgress(c echo.Context) (err error) {
	percent, err := uh.ProgressUseCase.CourseProgress(c.Request().Context(), c.QueryParam("courseId"), c.QueryParam("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"progress": percent})
}

func (uh *UserHandler) HandleEnrollmentStatus(c echo.Context) (err error) {
	ok, err := uh.EnrollmentUseCase.IsEnrolled(c.Request().Context(), c.QueryParam("userId"), c.QueryParam("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"isEnrolled": ok})
}

func (uh *UserHandler) HandleListProgress(c echo.Context) (err error) {
	records, err := uh.ProgressUseCase.ListProgress(c.Request().Context(), c.QueryParam("userId"), c.QueryParam("courseId"))
	if err != nil {
		return err
	}
	if records == nil {
		records = []*progress.Record{}
	}
	return c.JSON(http.StatusOK, records)
}

type saveProgressRequest struct {
	LectureID string `json:"lectureId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
	Completed bool   `json:"completed"`
}

func (uh *UserHandler) HandleSaveProgress(c echo.Context) (err error) {
	req := new(saveProgressRequest)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}
	if errs := uh.Validator.Struct(req); errs != nil {
		return c.JSON(http.StatusBadRequest, badRequest(errs))
	}

	record, err := uh.ProgressUseCase.SaveProgress(c.Request().Context(), req.UserID, req.LectureID, req.Completed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}
