package payment

import (
	"encoding/json"
	"net/http"

	paymentService "checkout-hub/internal/service/payment"
)

// CreatePaymentIntentFunc adapts the intent operation to a bare
// http.HandlerFunc for serverless hosts that mount a single function
// per route. It carries its own CORS handling since no middleware chain
// runs there.
func CreatePaymentIntentFunc(service paymentService.IService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method Not Allowed"})
			return
		}

		var req paymentService.CreateIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		resp := service.CreatePaymentIntent(&req)
		if resp.Code >= 200 && resp.Code <= 299 {
			writeJSON(w, resp.Code, resp.Data)
			return
		}

		message := resp.Message
		if resp.Error != nil {
			message = resp.Error.Error()
		}
		writeJSON(w, resp.Code, map[string]string{"error": message})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
