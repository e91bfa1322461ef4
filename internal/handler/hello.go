package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type helloRequest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (r helloRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Age, validation.Required, validation.Min(1)),
	)
}

// HelloHandler serves POST /api/httppost. The body must be a JSON object with
// a non-empty "name" and a positive integer "age".
type HelloHandler struct {
	logger *slog.Logger
}

func NewHelloHandler(logger *slog.Logger) *HelloHandler {
	return &HelloHandler{logger: logger}
}

func (h *HelloHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body helloRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("Rejected request with malformed body", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	h.logger.Info("Processing POST request", slog.String("name", body.Name))

	if err := body.Validate(); err != nil {
		http.Error(w, "Please provide both 'name' and 'age' in the request body.", http.StatusBadRequest)
		return
	}

	fmt.Fprintf(w, "Hello, %s! You are %d years old!", body.Name, body.Age)
}
