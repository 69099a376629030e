package handler

import (
	"context"
	"errors"

	"github.com/gorilla/websocket"
	"github.com/pot-code/course-platform/internal/domain"
)

// ProgressSource course progress of a user
type ProgressSource interface {
	CourseProgress(ctx context.Context, courseID, userID string) (int, error)
}

type progressProbeRequest struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
}

type progressProbeResponse struct {
	CourseID string `json:"courseId"`
	Progress int    `json:"progress"`
	Error    string `json:"error,omitempty"`
}

// NewProgressProbe answers each {userId, courseId} message with the current course progress
func NewProgressProbe(source ProgressSource) func(ctx context.Context, conn *websocket.Conn) error {
	return func(ctx context.Context, conn *websocket.Conn) error {
		req := new(progressProbeRequest)
		if err := conn.ReadJSON(req); err != nil {
			// malformed payloads close the socket like a read failure
			return err
		}

		resp := &progressProbeResponse{CourseID: req.CourseID}
		progress, err := source.CourseProgress(ctx, req.CourseID, req.UserID)
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			resp.Error = err.Error()
		case err != nil:
			return err
		default:
			resp.Progress = progress
		}
		return conn.WriteJSON(resp)
	}
}
