package lecture

import (
	"context"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/logging"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// LectureUseCaseImpl ...
type LectureUseCaseImpl struct {
	LectureRepository LectureRepository
}

var _ LectureUseCase = &LectureUseCaseImpl{}

// NewLectureUseCase ...
func NewLectureUseCase(LectureRepository LectureRepository) *LectureUseCaseImpl {
	return &LectureUseCaseImpl{LectureRepository}
}

func validType(t string) bool {
	switch t {
	case TypeVideo, TypeAssignment, TypeQuiz:
		return true
	}
	return false
}

func (lu *LectureUseCaseImpl) ListLectures(ctx context.Context, moduleID string) ([]*Lecture, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.ListLectures", "service")
	defer apmSpan.End()

	if err := domain.Required("moduleId", moduleID); err != nil {
		return nil, err
	}
	return lu.LectureRepository.ListLectures(ctx, moduleID)
}

func (lu *LectureUseCaseImpl) GetLecture(ctx context.Context, id string) (*Lecture, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.GetLecture", "service")
	defer apmSpan.End()

	if err := domain.Required("lectureId", id); err != nil {
		return nil, err
	}
	l, err := lu.LectureRepository.FindLecture(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

func (lu *LectureUseCaseImpl) CreateLecture(ctx context.Context, lecture *Lecture) (*Lecture, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.CreateLecture", "service")
	defer apmSpan.End()

	if err := domain.Required("module_id", lecture.ModuleID, "title", lecture.Title, "type", lecture.Type); err != nil {
		return nil, err
	}
	if !validType(lecture.Type) {
		return nil, domain.NewArgumentError("type", "type must be one of video, assignment, quiz")
	}

	lr := lu.LectureRepository
	if lecture.Order <= 0 {
		max, err := lr.MaxOrder(ctx, lecture.ModuleID)
		if err != nil {
			return nil, err
		}
		lecture.Order = max + 1
	}
	if err := lr.SaveLecture(ctx, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

func (lu *LectureUseCaseImpl) UpdateLecture(ctx context.Context, id string, patch *LecturePatch) (*Lecture, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.UpdateLecture", "service")
	defer apmSpan.End()

	if err := domain.Required("lectureId", id); err != nil {
		return nil, err
	}
	if patch != nil && patch.Type != nil && !validType(*patch.Type) {
		return nil, domain.NewArgumentError("type", "type must be one of video, assignment, quiz")
	}
	ok, err := lu.LectureRepository.UpdateLecture(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return lu.GetLecture(ctx, id)
}

func (lu *LectureUseCaseImpl) DeleteLecture(ctx context.Context, id string) error {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.DeleteLecture", "service")
	defer apmSpan.End()

	if err := domain.Required("lectureId", id); err != nil {
		return err
	}
	ok, err := lu.LectureRepository.DeleteLecture(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (lu *LectureUseCaseImpl) ReorderLectures(ctx context.Context, moduleID string, ids []string) error {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.ReorderLectures", "service")
	defer apmSpan.End()

	if err := domain.Required("module_id", moduleID); err != nil {
		return err
	}
	if len(ids) == 0 {
		return domain.NewArgumentError("lecture_ids", "lecture_ids is required")
	}
	return lu.LectureRepository.Reorder(ctx, moduleID, ids)
}

// FirstLecture id of the lecture a learner starts a course with
func (lu *LectureUseCaseImpl) FirstLecture(ctx context.Context, courseID string) (string, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LectureUseCaseImpl.FirstLecture", "service")
	defer apmSpan.End()

	if err := domain.Required("courseId", courseID); err != nil {
		return "", err
	}

	lr := lu.LectureRepository
	id, err := lr.FirstLectureID(ctx, courseID)
	if err != nil {
		logging.ExtractLoggerFromContext(ctx).Warn("first lecture query failed, falling back",
			zap.String("course.id", courseID), zap.Error(err))

		var moduleID string
		if moduleID, err = lr.FirstModuleID(ctx, courseID); err != nil {
			return "", err
		}
		if moduleID == "" {
			return "", domain.ErrNotFound
		}
		if id, err = lr.FirstLectureOfModule(ctx, moduleID); err != nil {
			return "", err
		}
	}
	if id == "" {
		return "", domain.ErrNotFound
	}
	return id, nil
}
