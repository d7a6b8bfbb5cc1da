package contract

type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string       `json:"message"`
	Code    string       `json:"code"`
	Details []FieldError `json:"details,omitempty"`
}
