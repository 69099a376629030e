package rest

import (
	"github.com/pot-code/course-platform/internal/attachment"
	"github.com/pot-code/course-platform/internal/course"
	"github.com/pot-code/course-platform/internal/enrollment"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
	"github.com/pot-code/course-platform/internal/lecture"
	"github.com/pot-code/course-platform/internal/module"
	"github.com/pot-code/course-platform/internal/payment"
	"github.com/pot-code/course-platform/internal/profile"
	"github.com/pot-code/course-platform/internal/progress"
)

// NewUseCases build every use case on top of one store
func NewUseCases(
	conn driver.ITransactionalDB,
	UUIDGenerator uuid.Generator,
	Gateway payment.Gateway,
	Fanout int,
) *UseCases {
	ProfileUseCase := profile.NewProfileUseCase(profile.NewProfileRepository(conn))
	ProgressUseCase := progress.NewProgressUseCase(progress.NewProgressRepository(conn, UUIDGenerator))
	EnrollmentUseCase := enrollment.NewEnrollmentUseCase(
		enrollment.NewEnrollmentRepository(conn, UUIDGenerator),
		ProgressUseCase,
		Fanout,
	)
	return &UseCases{
		Enrollment: EnrollmentUseCase,
		Progress:   ProgressUseCase,
		Course:     course.NewCourseUseCase(course.NewCourseRepository(conn, UUIDGenerator), ProfileUseCase.ProfileRepository),
		Module:     module.NewModuleUseCase(module.NewModuleRepository(conn, UUIDGenerator)),
		Lecture:    lecture.NewLectureUseCase(lecture.NewLectureRepository(conn, UUIDGenerator)),
		Attachment: attachment.NewAttachmentUseCase(attachment.NewAttachmentRepository(conn, UUIDGenerator)),
		Profile:    ProfileUseCase,
		Payment: payment.NewPaymentUseCase(
			Gateway,
			payment.NewPaymentRepository(conn, UUIDGenerator),
			EnrollmentUseCase,
		),
	}
}
