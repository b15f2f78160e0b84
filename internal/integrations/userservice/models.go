package userservice

// User модель пользователя из UserService
type User struct {
	ID             int64  `json:"id"`
	DisplayName    string `json:"display_name"`
	Role           string `json:"role"`
	AssignedCenter *int64 `json:"assigned_center,omitempty"`
	Active         bool   `json:"active"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
