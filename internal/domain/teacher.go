package domain

import "time"

// Gender enumerates the values accepted for a teacher profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// TeacherProfile holds teacher-specific attributes for exactly one User.
type TeacherProfile struct {
	ID             int64
	UserID         string
	UniversityName string
	Department     string
	Gender         Gender
	YearJoined     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Teacher is the joined read model: a profile plus the identity fields of its user.
type Teacher struct {
	TeacherProfile
	Email     string
	FirstName string
	LastName  string
}

// TeacherFilter narrows a teacher listing.
type TeacherFilter struct {
	// Query matches case-insensitively against names, email, department and university.
	Query string
}
