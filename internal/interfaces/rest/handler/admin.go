package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/course-platform/internal/attachment"
	"github.com/pot-code/course-platform/internal/course"
	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/validate"
	"github.com/pot-code/course-platform/internal/lecture"
	"github.com/pot-code/course-platform/internal/module"
	"github.com/pot-code/course-platform/internal/profile"
)

// AdminHandler content and user management, mounted behind the admin guard
type AdminHandler struct {
	CourseUseCase     course.CourseUseCase
	ModuleUseCase     module.ModuleUseCase
	LectureUseCase    lecture.LectureUseCase
	AttachmentUseCase attachment.AttachmentUseCase
	ProfileUseCase    profile.ProfileUseCase
	Validator         validate.Validator
}

func NewAdminHandler(
	CourseUseCase course.CourseUseCase,
	ModuleUseCase module.ModuleUseCase,
	LectureUseCase lecture.LectureUseCase,
	AttachmentUseCase attachment.AttachmentUseCase,
	ProfileUseCase profile.ProfileUseCase,
	Validator validate.Validator,
) *AdminHandler {
	return &AdminHandler{CourseUseCase, ModuleUseCase, LectureUseCase, AttachmentUseCase, ProfileUseCase, Validator}
}

// courses

func (ah *AdminHandler) HandleListCourses(c echo.Context) (err error) {
	filter := &course.CourseFilter{Category: c.QueryParam("category")}
	if v := c.QueryParam("published"); v != "" {
		published, err := strconv.ParseBool(v)
		if err != nil {
			return domain.NewArgumentError("published", "published must be true or false")
		}
		filter.Published = &published
	}

	courses, err := ah.CourseUseCase.ListCourses(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

func (ah *AdminHandler) HandleCreateCourse(c echo.Context) (err error) {
	req := new(course.Course)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}

	created, err := ah.CourseUseCase.CreateCourse(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

type updateCourseRequest struct {
	CourseID   string              `json:"courseId" validate:"required"`
	CourseData *course.CoursePatch `json:"courseData"`
}

func (ah *AdminHandler) HandleUpdateCourse(c echo.Context) (err error) {
	req := new(updateCourseRequest)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}
	if errs := ah.Validator.Struct(req); errs != nil {
		return c.JSON(http.StatusBadRequest, badRequest(errs))
	}

	updated, err := ah.CourseUseCase.UpdateCourse(c.Request().Context(), req.CourseID, req.CourseData)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (ah *AdminHandler) HandleCourseDetail(c echo.Context) (err error) {
	detail, err := ah.CourseUseCase.GetCourseDetail(c.Request().Context(), c.Param("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

func (ah *AdminHandler) HandleDeleteCourse(c echo.Context) (err error) {
	if err := ah.CourseUseCase.DeleteCourse(c.Request().Context(), c.Param("courseId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// modules

func (ah *AdminHandler) HandleCreateModule(c echo.Context) (err error) {
	req := new(module.Module)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}

	created, err := ah.ModuleUseCase.CreateModule(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

func (ah *AdminHandler) HandleGetModule(c echo.Context) (err error) {
	m, err := ah.ModuleUseCase.GetModule(c.Request().Context(), c.Param("moduleId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

type updateModuleRequest struct {
	ModuleID   string              `json:"moduleId" validate:"required"`
	ModuleData *module.ModulePatch `json:"moduleData"`
}

// HandleUpdateModule accepts the id either in the path or in the envelope body
func (ah *AdminHandler) HandleUpdateModule(c echo.Context) (err error) {
	req := new(updateModuleRequest)
	if id := c.Param("moduleId"); id != "" {
		req.ModuleID = id
		req.ModuleData = new(module.ModulePatch)
		if verr := bind(c, req.ModuleData); verr != nil {
			return c.JSON(http.StatusBadRequest, verr)
		}
	} else if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}
	if errs := ah.Validator.Struct(req); errs != nil {
		return c.JSON(http.StatusBadRequest, badRequest(errs))
	}

	updated, err := ah.ModuleUseCase.UpdateModule(c.Request().Context(), req.ModuleID, req.ModuleData)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

type reorderModulesRequest struct {
	CourseID  string   `json:"course_id" validate:"required"`
	ModuleIDs []string `json:"module_ids" validate:"required,min=1"`
}

func (ah *AdminHandler) HandleReorderModules(c echo.Context) (err error) {
	req := new(reorderModulesRequest)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}
	if errs := ah.Validator.Struct(req); errs != nil {
		return c.JSON(http.StatusBadRequest, badRequest(errs))
	}

	if err := ah.ModuleUseCase.ReorderModules(c.Request().Context(), req.CourseID, req.ModuleIDs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// lectures

func (ah *AdminHandler) HandleCreateLecture(c echo.Context) (err error) {
	req := new(lecture.Lecture)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}

	created, err := ah.LectureUseCase.CreateLecture(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

func (ah *AdminHandler) HandleGetLecture(c echo.Context) (err error) {
	l, err := ah.LectureUseCase.GetLecture(c.Request().Context(), c.Param("lectureId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

type updateLectureRequest struct {
	LectureID   string                `json:"lectureId" validate:"required"`
	LectureData *lecture.LecturePatch `json:"lectureData"`
}

func (ah *AdminHandler) HandleUpdateLecture(c echo.Context) (err error) {
	req := new(updateLectureRequest)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}
	if errs := ah.Validator.Struct(req); errs != nil {
		return c.JSON(http.StatusBadRequest, badRequest(errs))
	}

	updated, err := ah.LectureUseCase.UpdateLecture(c.Request().Context(), req.LectureID, req.LectureData)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (ah *AdminHandler) HandleDeleteLecture(c echo.Context) (err error) {
	if err := ah.LectureUseCase.DeleteLecture(c.Request().Context(), c.Param("lectureId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

type reorderLecturesRequest struct {
	ModuleID   string   `json:"module_id" validate:"required"`
	LectureIDs []string `json:"lecture_ids" validate:"required,min=1"`
}

func (ah *AdminHandler) HandleReorderLectures(c echo.Context) (err error) {
	req := new(reorderLecturesRequest)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}
	if errs := ah.Validator.Struct(req); errs != nil {
		return c.JSON(http.StatusBadRequest, badRequest(errs))
	}

	if err := ah.LectureUseCase.ReorderLectures(c.Request().Context(), req.ModuleID, req.LectureIDs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// attachments

func (ah *AdminHandler) HandleListAttachments(c echo.Context) (err error) {
	attachments, err := ah.AttachmentUseCase.ListAttachments(c.Request().Context(), c.QueryParam("course_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attachments)
}

func (ah *AdminHandler) HandleCreateAttachment(c echo.Context) (err error) {
	req := new(attachment.Attachment)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}

	created, err := ah.AttachmentUseCase.CreateAttachment(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

func (ah *AdminHandler) HandleGetAttachment(c echo.Context) (err error) {
	a, err := ah.AttachmentUseCase.GetAttachment(c.Request().Context(), c.Param("attachmentId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (ah *AdminHandler) HandleDeleteAttachment(c echo.Context) (err error) {
	if err := ah.AttachmentUseCase.DeleteAttachment(c.Request().Context(), c.Param("attachmentId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// users

func (ah *AdminHandler) HandleListUsers(c echo.Context) (err error) {
	users, err := ah.ProfileUseCase.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (ah *AdminHandler) HandleUpdateRole(c echo.Context) (err error) {
	req := new(updateRoleRequest)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}
	if errs := ah.Validator.Struct(req); errs != nil {
		return c.JSON(http.StatusBadRequest, badRequest(errs))
	}

	if err := ah.ProfileUseCase.UpdateRole(c.Request().Context(), c.Param("userId"), req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (ah *AdminHandler) HandleUpdateStatus(c echo.Context) (err error) {
	req := new(updateStatusRequest)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}
	if errs := ah.Validator.Struct(req); errs != nil {
		return c.JSON(http.StatusBadRequest, badRequest(errs))
	}

	if err := ah.ProfileUseCase.UpdateStatus(c.Request().Context(), c.Param("userId"), req.Status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
