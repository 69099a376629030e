package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/course-platform/internal/course"
	"github.com/pot-code/course-platform/internal/lecture"
	"github.com/pot-code/course-platform/internal/module"
)

// CatalogHandler public course catalog
type CatalogHandler struct {
	CourseUseCase  course.CourseUseCase
	ModuleUseCase  module.ModuleUseCase
	LectureUseCase lecture.LectureUseCase
}

func NewCatalogHandler(
	CourseUseCase course.CourseUseCase,
	ModuleUseCase module.ModuleUseCase,
	LectureUseCase lecture.LectureUseCase,
) *CatalogHandler {
	return &CatalogHandler{CourseUseCase, ModuleUseCase, LectureUseCase}
}

func (ch *CatalogHandler) HandleListCourses(c echo.Context) (err error) {
	courses, err := ch.CourseUseCase.ListPublished(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

func (ch *CatalogHandler) HandleGetCourse(c echo.Context) (err error) {
	data, err := ch.CourseUseCase.GetCourse(c.Request().Context(), c.Param("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, data)
}

func (ch *CatalogHandler) HandleListModules(c echo.Context) (err error) {
	modules, err := ch.ModuleUseCase.ListModules(c.Request().Context(), c.Param("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, modules)
}

func (ch *CatalogHandler) HandleFirstLecture(c echo.Context) (err error) {
	id, err := ch.LectureUseCase.FirstLecture(c.Request().Context(), c.Param("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"lectureId": id})
}

func (ch *CatalogHandler) HandleListLectures(c echo.Context) (err error) {
	lectures, err := ch.LectureUseCase.ListLectures(c.Request().Context(), c.Param("moduleId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lectures)
}
