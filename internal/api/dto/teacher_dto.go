package dto

import (
	"time"

	"github.com/spec-kit/teacher-directory/internal/domain"
)

// Teacher is the joined profile + identity view returned by the directory.
type Teacher struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	UniversityName string    `json:"university_name"`
	Department     string    `json:"department"`
	Gender         string    `json:"gender"`
	YearJoined     int       `json:"year_joined"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TeacherResponse wraps a single teacher.
type TeacherResponse struct {
	Status int     `json:"status"`
	Data   Teacher `json:"data"`
}

// TeacherListResponse wraps a teacher listing.
type TeacherListResponse struct {
	Status int       `json:"status"`
	Data   []Teacher `json:"data"`
}

// ProfileUpdateRequest is a partial update; absent fields are left unchanged.
type ProfileUpdateRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	UniversityName *string `json:"university_name"`
	Department     *string `json:"department"`
	Gender         *string `json:"gender"`
	YearJoined     *int    `json:"year_joined"`
	Password       *string `json:"password"`
}

// FromTeacher converts the domain read model.
func FromTeacher(t domain.Teacher) Teacher {
	return Teacher{
		ID:             t.ID,
		UserID:         t.UserID,
		Email:          t.Email,
		FirstName:      t.FirstName,
		LastName:       t.LastName,
		UniversityName: t.UniversityName,
		Department:     t.Department,
		Gender:         string(t.Gender),
		YearJoined:     t.YearJoined,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// FromTeachers converts a listing, never returning nil.
func FromTeachers(ts []domain.Teacher) []Teacher {
	out := make([]Teacher, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTeacher(t))
	}
	return out
}
