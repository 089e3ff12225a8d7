package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta genérica {success, message}.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
