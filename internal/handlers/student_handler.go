package handlers

import (
	"io"
	"net/http"

	"school-backend/internal/apperr"
	"school-backend/internal/middleware"
	"school-backend/internal/models"
	"school-backend/internal/services"
	"school-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type StudentHandler struct {
	Students *services.StudentService
	Storage  *services.StorageService
}

func NewStudentHandler(students *services.StudentService, storage *services.StorageService) *StudentHandler {
	return &StudentHandler{Students: students, Storage: storage}
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	student, err := h.Students.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, student)
}

func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	student, err := h.Students.Get(r.Context(), mux.Vars(r)["studentId"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, student)
}

// List returns students, optionally filtered by class. Teacher accounts
// only see their own students.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if role, _ := middleware.GetRoleFromContext(ctx); role == models.RoleTeacher {
		teacherID, _ := middleware.GetTeacherIDFromContext(ctx)
		students, err := h.Students.ListByTeacher(ctx, teacherID)
		if err != nil {
			utils.Error(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, students)
		return
	}

	var (
		students []*models.Student
		err      error
	)
	if class := r.URL.Query().Get("class"); class != "" {
		students, err = h.Students.ListByClass(ctx, class)
	} else {
		students, err = h.Students.List(ctx)
	}
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, students)
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStudentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	student, err := h.Students.Update(r.Context(), mux.Vars(r)["studentId"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, student)
}

func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Students.Delete(r.Context(), mux.Vars(r)["studentId"]); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "student deleted"})
}

// BulkUpdateClass moves a set of students to a new class in one go, the
// office's year-end promotion flow.
func (h *StudentHandler) BulkUpdateClass(w http.ResponseWriter, r *http.Request) {
	var req models.BulkUpdateClassRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.Students.BulkUpdateClass(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"updated":    updated,
		"class_name": req.NewClass,
	})
}

// GetPhoto streams the student's stored profile image.
func (h *StudentHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	student, err := h.Students.Get(r.Context(), mux.Vars(r)["studentId"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	if student.ProfileImageURL == "" {
		utils.Error(w, apperr.NotFound("student has no photo"))
		return
	}

	body, contentType, err := h.Storage.OpenPhoto(r.Context(), student.ProfileImageURL)
	if err != nil {
		utils.Error(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	io.Copy(w, body)
}

// UploadPhoto accepts a multipart "photo" field and stores it as the
// student's profile image.
func (h *StudentHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "photo field is required")
		return
	}
	defer file.Close()

	location, err := h.Storage.SavePhoto(r.Context(), studentID,
		header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.Students.SetProfileImage(r.Context(), studentID, location); err != nil {
		h.Storage.DeletePhoto(r.Context(), location)
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"profile_image_url": location})
}
