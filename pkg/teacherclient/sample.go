package teacherclient

import "strings"

// SamplePassword is the password cmd/seed registers the sample teachers with.
const SamplePassword = "password123"

var samples = []Teacher{
	{
		ID:             1,
		UserID:         "00000000-0000-0000-0000-000000000001",
		FirstName:      "John",
		LastName:       "Doe",
		Email:          "john.doe@university.edu",
		UniversityName: "Savitribai Phule Pune University",
		Department:     "Computer Science",
		YearJoined:     2020,
		Gender:         "male",
	},
	{
		ID:             2,
		UserID:         "00000000-0000-0000-0000-000000000002",
		FirstName:      "Jane",
		LastName:       "Smith",
		Email:          "jane.smith@university.edu",
		UniversityName: "Savitribai Phule Pune University",
		Department:     "Mathematics",
		YearJoined:     2019,
		Gender:         "female",
	},
	{
		ID:             3,
		UserID:         "00000000-0000-0000-0000-000000000003",
		FirstName:      "Aryan",
		LastName:       "Rathod",
		Email:          "aryanrathod791@gmail.com",
		UniversityName: "Savitribai Phule Pune University",
		Department:     "Artificial Intelligence and Machine Learning",
		YearJoined:     2021,
		Gender:         "male",
	},
}

// SampleTeachers returns a copy of the built-in sample teachers.
func SampleTeachers() []Teacher {
	out := make([]Teacher, len(samples))
	copy(out, samples)
	return out
}

// SampleByUserID looks up a sample teacher.
func SampleByUserID(userID string) (Teacher, bool) {
	for _, t := range samples {
		if t.UserID == userID {
			return t, true
		}
	}
	return Teacher{}, false
}

// FilterSamples applies the server's search rules to the sample teachers.
func FilterSamples(query string) []Teacher {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Teacher, 0, len(samples))
	for _, t := range samples {
		if q == "" || matches(t, q) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t Teacher, q string) bool {
	for _, field := range []string{t.FirstName, t.LastName, t.Email, t.Department, t.UniversityName} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
