package models

import "time"

type Student struct {
	ID              int       `json:"id"`
	StudentID       string    `json:"student_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email,omitempty"`
	GuardianName    string    `json:"guardian_name,omitempty"`
	GuardianContact string    `json:"guardian_contact,omitempty"`
	Address         string    `json:"address,omitempty"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	DateOfBirth     string    `json:"date_of_birth,omitempty"`
	EnrollmentDate  string    `json:"enrollment_date,omitempty"`
	ClassName       string    `json:"class_name"`
	TeacherID       string    `json:"teacher_id"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateStudentRequest struct {
	StudentID       string `json:"student_id" validate:"required"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	FullName        string `json:"full_name"`
	Email           string `json:"email" validate:"omitempty,email"`
	GuardianName    string `json:"guardian_name"`
	GuardianContact string `json:"guardian_contact"`
	Address         string `json:"address"`
	PhoneNumber     string `json:"phone_number"`
	DateOfBirth     string `json:"date_of_birth"`
	EnrollmentDate  string `json:"enrollment_date"`
	ClassName       string `json:"class_name" validate:"required"`
	TeacherID       string `json:"teacher_id" validate:"required"`
}

// UpdateStudentRequest carries partial updates; nil fields are left unchanged.
type UpdateStudentRequest struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	FullName        *string `json:"full_name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	GuardianName    *string `json:"guardian_name"`
	GuardianContact *string `json:"guardian_contact"`
	Address         *string `json:"address"`
	PhoneNumber     *string `json:"phone_number"`
	DateOfBirth     *string `json:"date_of_birth"`
	EnrollmentDate  *string `json:"enrollment_date"`
	ClassName       *string `json:"class_name"`
	TeacherID       *string `json:"teacher_id"`
}

// BulkUpdateClassRequest moves a set of students to a new class, e.g. at
// the start of an academic year.
type BulkUpdateClassRequest struct {
	StudentIDs []string `json:"student_ids" validate:"required,min=1,dive,required"`
	NewClass   string   `json:"new_class" validate:"required"`
}
