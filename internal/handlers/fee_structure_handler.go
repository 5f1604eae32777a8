package handlers

import (
	"net/http"

	"school-backend/internal/middleware"
	"school-backend/internal/models"
	"school-backend/internal/services"
	"school-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type FeeStructureHandler struct {
	FeeStructures *services.FeeStructureService
}

func NewFeeStructureHandler(feeStructures *services.FeeStructureService) *FeeStructureHandler {
	return &FeeStructureHandler{FeeStructures: feeStructures}
}

// Save creates or replaces the fee structure for a class.
func (h *FeeStructureHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.FeeStructureRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	username, _ := middleware.GetUsernameFromContext(r.Context())
	fs, err := h.FeeStructures.Save(r.Context(), &req, username)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, fs)
}

func (h *FeeStructureHandler) Get(w http.ResponseWriter, r *http.Request) {
	fs, err := h.FeeStructures.Get(r.Context(), mux.Vars(r)["className"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, fs)
}

func (h *FeeStructureHandler) List(w http.ResponseWriter, r *http.Request) {
	structures, err := h.FeeStructures.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, structures)
}

func (h *FeeStructureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.FeeStructures.Delete(r.Context(), mux.Vars(r)["className"]); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "fee structure deactivated"})
}
