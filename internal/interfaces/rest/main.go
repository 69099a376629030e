package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
	"github.com/pot-code/course-platform/internal/attachment"
	"github.com/pot-code/course-platform/internal/course"
	"github.com/pot-code/course-platform/internal/enrollment"
	infra "github.com/pot-code/course-platform/internal/infrastructure"
	"github.com/pot-code/course-platform/internal/infrastructure/auth"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/validate"
	"github.com/pot-code/course-platform/internal/interfaces/rest/handler"
	"github.com/pot-code/course-platform/internal/interfaces/rest/middleware"
	"github.com/pot-code/course-platform/internal/lecture"
	"github.com/pot-code/course-platform/internal/module"
	"github.com/pot-code/course-platform/internal/payment"
	"github.com/pot-code/course-platform/internal/profile"
	"github.com/pot-code/course-platform/internal/progress"
	"go.elastic.co/apm/module/apmechov4"
	"go.uber.org/zap"
)

// UseCases application services exposed over REST
type UseCases struct {
	Enrollment enrollment.EnrollmentUseCase
	Progress   progress.ProgressUseCase
	Course     course.CourseUseCase
	Module     module.ModuleUseCase
	Lecture    lecture.LectureUseCase
	Attachment attachment.AttachmentUseCase
	Profile    profile.ProfileUseCase
	Payment    payment.PaymentUseCase
}

// Serve create http transport server, blocks until the server stops
func Serve(
	conn driver.ITransactionalDB,
	rdb driver.KeyValueDB,
	option *infra.AppConfig,
	uc *UseCases,
	logger *zap.Logger,
) error {
	app := NewApp(conn, rdb, option, uc, logger)
	printRoutes(app, logger)
	return app.Start(fmt.Sprintf("%s:%d", option.Host, option.Port))
}

// NewApp echo instance with middlewares and routes registered
func NewApp(
	conn driver.ITransactionalDB,
	rdb driver.KeyValueDB,
	option *infra.AppConfig,
	uc *UseCases,
	logger *zap.Logger,
) *echo.Echo {
	var (
		app       = echo.New()
		validator = validate.NewValidator()
		websocket = infra.NewWebsocket()
		jwtUtil   = auth.NewJWTUtil(option.Security.JWTMethod,
			option.Security.JWTSecret,
			option.Security.TokenName)
		jwtMiddleware = middleware.VerifyToken(jwtUtil, &middleware.ValidateTokenOption{
			InBlackList: func(c echo.Context, token string) (bool, error) {
				return rdb.Exists(c.Request().Context(), token)
			},
		})
		adminMiddleware = middleware.RequireAdmin(jwtUtil, uc.Profile)
	)
	app.HideBanner = true

	registerLivenessProbe(app, conn, rdb)
	if option.Env == infra.EnvDevelopment {
		registerProfileEndpoints(app)
	}
	app.Use(middleware.Logging(logger, &middleware.LoggingConfig{
		Skipper: func(e echo.Context) bool {
			return strings.HasPrefix(e.Request().RequestURI, "/healthz")
		},
	}))
	app.Use(middleware.ErrorHandling(
		&middleware.ErrorHandlingOption{
			Handler: func(c echo.Context, err error) {
				traceID := c.Response().Header().Get(echo.HeaderXRequestID)
				code, body := handler.ErrorResponse(err, traceID)
				if code >= http.StatusInternalServerError {
					logger.Error(err.Error(), zap.String("trace.id", traceID), zap.String("url.path", c.Request().RequestURI))
				}
				c.JSON(code, body)
			},
		},
	))
	app.Use(echo_middleware.Secure())
	if option.DevOP.APM {
		app.Use(apmechov4.Middleware())
	}
	app.Use(echo_middleware.CORS())
	app.Use(middleware.AbortRequest(&middleware.AbortRequestOption{
		Timeout: option.RequestTimeout,
		Skipper: func(e echo.Context) bool {
			return strings.Contains(e.Request().RequestURI, "/ws/")
		},
	}))

	var (
		UserHandler    = handler.NewUserHandler(uc.Enrollment, uc.Progress, validator)
		CatalogHandler = handler.NewCatalogHandler(uc.Course, uc.Module, uc.Lecture)
		PaymentHandler = handler.NewPaymentHandler(uc.Payment)
		AuthHandler    = handler.NewAuthHandler(jwtUtil, rdb)
		AdminHandler   = handler.NewAdminHandler(uc.Course, uc.Module, uc.Lecture, uc.Attachment, uc.Profile, validator)
		adminGuard     = []echo.MiddlewareFunc{jwtMiddleware, adminMiddleware}
	)

	createEndpoint(app,
		&endpoint{
			apiVersion:  "api/v1",
			middlewares: []echo.MiddlewareFunc{echo_middleware.RequestID(), middleware.SetTraceLogger(logger)},
			groups: []*apiGroup{
				{
					prefix: "/users",
					routes: []*route{
						{"GET", "/enrollments", UserHandler.HandleListEnrollments, nil},
						{"GET", "/course-progress", UserHandler.HandleCourseProgress, nil},
						{"GET", "/enrollment-status", UserHandler.HandleEnrollmentStatus, nil},
						{"GET", "/progress", UserHandler.HandleListProgress, nil},
						{"POST", "/progress", UserHandler.HandleSaveProgress, nil},
					},
				},
				{
					prefix: "/courses",
					routes: []*route{
						{"GET", "", CatalogHandler.HandleListCourses, nil},
						{"GET", "/:courseId", CatalogHandler.HandleGetCourse, nil},
						{"GET", "/:courseId/modules", CatalogHandler.HandleListModules, nil},
						{"GET", "/:courseId/first-lecture", CatalogHandler.HandleFirstLecture, nil},
					},
				},
				{
					prefix: "/modules",
					routes: []*route{
						{"GET", "/:moduleId/lectures", CatalogHandler.HandleListLectures, nil},
					},
				},
				{
					prefix: "/payments",
					routes: []*route{
						{"POST", "/confirm", PaymentHandler.HandleConfirm, nil},
					},
				},
				{
					prefix: "/auth",
					routes: []*route{
						{"PUT", "/sign-out", AuthHandler.HandleSignOut, nil},
					},
				},
				{
					prefix:      "/admin",
					middlewares: adminGuard,
					routes: []*route{
						{"GET", "/courses/list", AdminHandler.HandleListCourses, nil},
						{"POST", "/courses", AdminHandler.HandleCreateCourse, nil},
						{"PUT", "/courses", AdminHandler.HandleUpdateCourse, nil},
						{"GET", "/courses/:courseId", AdminHandler.HandleCourseDetail, nil},
						{"DELETE", "/courses/:courseId", AdminHandler.HandleDeleteCourse, nil},
						{"POST", "/modules", AdminHandler.HandleCreateModule, nil},
						{"PUT", "/modules", AdminHandler.HandleUpdateModule, nil},
						{"PUT", "/modules/reorder", AdminHandler.HandleReorderModules, nil},
						{"GET", "/modules/:moduleId", AdminHandler.HandleGetModule, nil},
						{"PUT", "/modules/:moduleId", AdminHandler.HandleUpdateModule, nil},
						{"POST", "/lectures", AdminHandler.HandleCreateLecture, nil},
						{"PUT", "/lectures", AdminHandler.HandleUpdateLecture, nil},
						{"PUT", "/lectures/reorder", AdminHandler.HandleReorderLectures, nil},
						{"GET", "/lectures/:lectureId", AdminHandler.HandleGetLecture, nil},
						{"DELETE", "/lectures/:lectureId", AdminHandler.HandleDeleteLecture, nil},
						{"GET", "/attachments", AdminHandler.HandleListAttachments, nil},
						{"POST", "/attachments", AdminHandler.HandleCreateAttachment, nil},
						{"GET", "/attachments/:attachmentId", AdminHandler.HandleGetAttachment, nil},
						{"DELETE", "/attachments/:attachmentId", AdminHandler.HandleDeleteAttachment, nil},
						{"GET", "/users", AdminHandler.HandleListUsers, nil},
						{"PUT", "/users/:userId/role", AdminHandler.HandleUpdateRole, nil},
						{"PUT", "/users/:userId/status", AdminHandler.HandleUpdateStatus, nil},
					},
				},
				{
					prefix: "/ws",
					routes: []*route{
						{"GET", "/progress", websocket.WithHeartbeat(handler.NewProgressProbe(uc.Progress)), nil},
					},
				},
			},
		})
	return app
}
