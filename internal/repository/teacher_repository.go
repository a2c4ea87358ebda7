package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/teacher-directory/internal/domain"
)

type teacherRepository struct {
	db DBTX
}

const teacherSelect = `
        SELECT t.id, t.user_id, t.university_name, t.department, t.gender, t.year_joined,
               t.created_at, t.updated_at, u.email, u.first_name, u.last_name
        FROM teachers t
        INNER JOIN users u ON u.id = t.user_id`

func (r *teacherRepository) Create(ctx context.Context, profile *domain.TeacherProfile) error {
	const query = `
        INSERT INTO teachers (user_id, university_name, department, gender, year_joined)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.UniversityName,
		profile.Department,
		profile.Gender,
		profile.YearJoined,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	return mapConstraint(err, ErrDuplicateProfile)
}

func (r *teacherRepository) Update(ctx context.Context, profile *domain.TeacherProfile) error {
	const query = `
        UPDATE teachers SET university_name=$1, department=$2, gender=$3, year_joined=$4, updated_at=NOW()
        WHERE user_id=$5
        RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		profile.UniversityName,
		profile.Department,
		profile.Gender,
		profile.YearJoined,
		profile.UserID,
	).Scan(&profile.UpdatedAt)
	return mapNoRows(err)
}

func (r *teacherRepository) List(ctx context.Context, filter domain.TeacherFilter) ([]domain.Teacher, error) {
	query := teacherSelect
	args := []any{}

	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		query += `
        WHERE u.first_name ILIKE $1 OR u.last_name ILIKE $1 OR u.email ILIKE $1
           OR t.department ILIKE $1 OR t.university_name ILIKE $1`
	}
	query += " ORDER BY t.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Teacher{}
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *teacher)
	}
	return result, rows.Err()
}

func (r *teacherRepository) GetByUserID(ctx context.Context, userID string) (*domain.Teacher, error) {
	teacher, err := scanTeacher(r.db.QueryRow(ctx, teacherSelect+" WHERE t.user_id=$1", userID))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return teacher, nil
}

func scanTeacher(row pgx.Row) (*domain.Teacher, error) {
	var t domain.Teacher
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.UniversityName,
		&t.Department,
		&t.Gender,
		&t.YearJoined,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.Email,
		&t.FirstName,
		&t.LastName,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
