package handlers

import (
	"net/http"

	"school-backend/internal/models"
	"school-backend/internal/services"
	"school-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type TeacherHandler struct {
	Teachers *services.TeacherService
}

func NewTeacherHandler(teachers *services.TeacherService) *TeacherHandler {
	return &TeacherHandler{Teachers: teachers}
}

func (h *TeacherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTeacherRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	teacher, err := h.Teachers.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, teacher)
}

func (h *TeacherHandler) Get(w http.ResponseWriter, r *http.Request) {
	teacher, err := h.Teachers.Get(r.Context(), mux.Vars(r)["teacherId"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, teacher)
}

func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.Teachers.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, teachers)
}

func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTeacherRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	teacher, err := h.Teachers.Update(r.Context(), mux.Vars(r)["teacherId"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, teacher)
}

func (h *TeacherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Teachers.Delete(r.Context(), mux.Vars(r)["teacherId"]); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "teacher deleted"})
}
