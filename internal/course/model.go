package course

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Course catalog entry
type Course struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	LongDescription string    `json:"long_description"`
	Category        string    `json:"category"`
	Level           string    `json:"level"`
	Duration        string    `json:"duration"`
	Price           Price     `json:"price"`
	ImageURL        string    `json:"image_url"`
	InstructorID    string    `json:"instructor_id"`
	Published       bool      `json:"published"`
	ForText         string    `json:"for_text"`
	NotFor          string    `json:"not_for"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CoursePatch partial update, nil fields are left untouched
type CoursePatch struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	LongDescription *string `json:"long_description"`
	Category        *string `json:"category"`
	Level           *string `json:"level"`
	Duration        *string `json:"duration"`
	Price           *Price  `json:"price"`
	ImageURL        *string `json:"image_url"`
	InstructorID    *string `json:"instructor_id"`
	Published       *bool   `json:"published"`
	ForText         *string `json:"for_text"`
	NotFor          *string `json:"not_for"`
}

// CourseFilter nil Published matches both states, empty or "all" Category matches every category
type CourseFilter struct {
	Published *bool
	Category  string
}

// Price accepts a JSON number or a numeric string, anything else becomes 0
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		v = 0
	}
	*p = Price(v)
	return nil
}

// LectureSummary lecture line of the course outline
type LectureSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Type     string `json:"type"`
}

// ModuleOutline module with its ordered lectures
type ModuleOutline struct {
	ID          string            `json:"id"`
	CourseID    string            `json:"course_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Order       int               `json:"order"`
	Lessons     []*LectureSummary `json:"lessons"`
}

// Instructor display block of the course detail
type Instructor struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// CourseDetail admin course view
type CourseDetail struct {
	*Course
	Modules    []*ModuleOutline `json:"modules"`
	Instructor *Instructor      `json:"instructor"`
}

type CourseRepository interface {
	// ListCourses newest first
	ListCourses(ctx context.Context, filter *CourseFilter) ([]*Course, error)
	FindCourse(ctx context.Context, id string) (*Course, error)
	SaveCourse(ctx context.Context, course *Course) error
	UpdateCourse(ctx context.Context, id string, patch *CoursePatch) (bool, error)
	DeleteCourse(ctx context.Context, id string) (bool, error)
	// ListOutline modules by order, each with lectures by order
	ListOutline(ctx context.Context, courseID string) ([]*ModuleOutline, error)
}

type CourseUseCase interface {
	ListPublished(ctx context.Context, category string) ([]*Course, error)
	ListCourses(ctx context.Context, filter *CourseFilter) ([]*Course, error)
	GetCourse(ctx context.Context, id string) (*Course, error)
	GetCourseDetail(ctx context.Context, id string) (*CourseDetail, error)
	CreateCourse(ctx context.Context, course *Course) (*Course, error)
	UpdateCourse(ctx context.Context, id string, patch *CoursePatch) (*Course, error)
	DeleteCourse(ctx context.Context, id string) error
}
