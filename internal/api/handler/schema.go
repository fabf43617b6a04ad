package handler

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

type messageResponse struct {
	OK      bool   `json:"ok,omitempty"`
	Message string `json:"message"`
}
