package handlers

import (
	"fmt"
	"net/http"

	"school-backend/internal/middleware"
	"school-backend/internal/models"
	"school-backend/internal/services"
	"school-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	Payments *services.PaymentService
	Receipts *services.ReceiptService
}

func NewPaymentHandler(payments *services.PaymentService, receipts *services.ReceiptService) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Receipts: receipts}
}

// ProcessPayment records a fee payment against a student.
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	username, _ := middleware.GetUsernameFromContext(r.Context())
	payment, err := h.Payments.ProcessPayment(r.Context(), &req, username)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, payment)
}

// GetStudentPayments returns a student's payment history, newest first.
func (h *PaymentHandler) GetStudentPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Payments.GetStudentPayments(r.Context(), mux.Vars(r)["studentId"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}

// GetFeeSummary returns the student's aggregated fee position.
func (h *PaymentHandler) GetFeeSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Payments.GetFeeSummary(r.Context(), mux.Vars(r)["studentId"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.Payments.GetPaymentByID(r.Context(), mux.Vars(r)["paymentId"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payment)
}

// GetReceipt returns the receipt as JSON, or as a PDF when the client
// asks for one via ?format=pdf.
func (h *PaymentHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["paymentId"]

	if r.URL.Query().Get("format") == "pdf" {
		pdf, err := h.Receipts.GeneratePDF(r.Context(), paymentID)
		if err != nil {
			utils.Error(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt_%s.pdf"`, paymentID))
		w.Write(pdf)
		return
	}

	receipt, err := h.Payments.GetReceipt(r.Context(), paymentID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, receipt)
}

// ExportHistoryCSV downloads a student's payment history as CSV.
func (h *PaymentHandler) ExportHistoryCSV(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	data, err := h.Receipts.GenerateHistoryCSV(r.Context(), studentID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payments_%s.csv"`, studentID))
	w.Write(data)
}
