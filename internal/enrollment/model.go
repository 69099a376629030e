package enrollment

import (
	"context"
	"time"
)

// CourseSummary display fields of an enrolled course
type CourseSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// Enrollment a (user, course) pair joined with the course, Course is nil when the course is gone
type Enrollment struct {
	ID       string
	UserID   string
	CourseID string
	Course   *CourseSummary
}

// EnrolledCourse course summary annotated with the user's progress
type EnrolledCourse struct {
	CourseSummary
	Progress int `json:"progress"`
}

type EnrollmentRepository interface {
	// ListEnrollments enrollments of user in store order
	ListEnrollments(ctx context.Context, userID string) ([]*Enrollment, error)
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	SaveEnrollment(ctx context.Context, enrollment *Enrollment) error
}

type EnrollmentUseCase interface {
	ListEnrolledCourses(ctx context.Context, userID string) ([]*EnrolledCourse, error)
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
	// Enroll create the enrollment unless it exists, reports whether one was created
	Enroll(ctx context.Context, userID, courseID string) (bool, error)
}

// ProgressAggregator course progress source of the lister
type ProgressAggregator interface {
	CourseProgress(ctx context.Context, courseID, userID string) (int, error)
}
