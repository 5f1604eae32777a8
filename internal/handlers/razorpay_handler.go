package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"school-backend/internal/models"
	"school-backend/internal/services"
	"school-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type RazorpayHandler struct {
	Razorpay *services.RazorpayService
}

func NewRazorpayHandler(razorpay *services.RazorpayService) *RazorpayHandler {
	return &RazorpayHandler{Razorpay: razorpay}
}

// CreateOrder opens a Razorpay order for an online fee payment.
func (h *RazorpayHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.Razorpay.CreateOrder(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// Webhook receives Razorpay events. The signature covers the raw body, so
// it is read before decoding.
func (h *RazorpayHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "cannot read body")
		return
	}

	if !h.Razorpay.VerifyWebhookSignature(body, r.Header.Get("X-Razorpay-Signature")) {
		utils.ErrorMessage(w, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	var event struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "invalid webhook payload")
		return
	}

	if err := h.Razorpay.ProcessWebhook(r.Context(), event.Event, event.Payload); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetTransaction reports the state of one online transaction.
func (h *RazorpayHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := h.Razorpay.GetTransaction(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, txn)
}

// Status lets the frontend know whether online payments are available.
func (h *RazorpayHandler) Status(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": h.Razorpay.Enabled()})
}
