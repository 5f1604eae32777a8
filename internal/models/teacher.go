package models

import "time"

type Teacher struct {
	ID          int       `json:"id"`
	TeacherID   string    `json:"teacher_id"` // human-readable ID, e.g. T001
	FullName    string    `json:"full_name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Address     string    `json:"address,omitempty"`
	HireDate    string    `json:"hire_date,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateTeacherRequest struct {
	TeacherID   string `json:"teacher_id" validate:"required"`
	FullName    string `json:"full_name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Subject     string `json:"subject"`
	Address     string `json:"address"`
	HireDate    string `json:"hire_date"`
	DateOfBirth string `json:"date_of_birth"`
}

type UpdateTeacherRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Subject     *string `json:"subject"`
	Address     *string `json:"address"`
	HireDate    *string `json:"hire_date"`
	DateOfBirth *string `json:"date_of_birth"`
}
