package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestRupeesToPaise(t *testing.T) {
	tests := []struct {
		rupees float64
		paise  int
	}{
		{500, 50000},
		{0.01, 1},
		// Amounts whose float representation sits just under the true
		// value; plain truncation loses a paisa on these.
		{0.29, 29},
		{1099.35, 109935},
		{19.99, 1999},
		{1234.56, 123456},
	}
	for _, tt := range tests {
		if got := rupeesToPaise(tt.rupees); got != tt.paise {
			t.Errorf("rupeesToPaise(%v) = %d, want %d", tt.rupees, got, tt.paise)
		}
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"event":"payment.captured"}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	good := hex.EncodeToString(mac.Sum(nil))

	svc := &RazorpayService{webhookSecret: secret}
	if !svc.VerifyWebhookSignature(body, good) {
		t.Error("valid signature rejected")
	}
	if svc.VerifyWebhookSignature(body, "deadbeef") {
		t.Error("bogus signature accepted")
	}
	if svc.VerifyWebhookSignature([]byte(`{"event":"tampered"}`), good) {
		t.Error("signature accepted for altered body")
	}

	unconfigured := &RazorpayService{}
	if unconfigured.VerifyWebhookSignature(body, good) {
		t.Error("signature accepted without a webhook secret")
	}
}

func TestWebhookPaymentEntity(t *testing.T) {
	payload := map[string]interface{}{
		"payment": map[string]interface{}{
			"entity": map[string]interface{}{
				"id":       "pay_123",
				"order_id": "order_456",
			},
		},
	}
	entity := webhookPaymentEntity(payload)
	if entity["order_id"] != "order_456" {
		t.Errorf("order_id = %v, want order_456", entity["order_id"])
	}

	if e := webhookPaymentEntity(map[string]interface{}{}); len(e) != 0 {
		t.Errorf("empty payload yielded entity %v", e)
	}
}
