package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type BackupResponse struct {
	Object string `json:"object"`
	Count  int    `json:"count,omitempty"`
}
