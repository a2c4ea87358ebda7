package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTeacherRegistered EventType = "teacher_registered"
	EventProfileUpdated    EventType = "teacher_profile_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TeacherRegisteredPayload payload.
type TeacherRegisteredPayload struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	UniversityName string `json:"university_name"`
}

// ProfileUpdatedPayload payload.
type ProfileUpdatedPayload struct {
	Fields          []string `json:"fields"`
	PasswordChanged bool     `json:"password_changed"`
}
