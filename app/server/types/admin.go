package types

type LoginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type AdminInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type LoginData struct {
	Token    string    `json:"token,omitempty"` // 仅 token 模式
	Username string    `json:"username"`
	Admin    AdminInfo `json:"admin"`
}

type LoginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    LoginData `json:"data"`
}

type CheckData struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
}

type CheckResponse struct {
	Success bool      `json:"success"`
	Data    CheckData `json:"data"`
}

type Profile struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"` // RFC 3339
}

type ProfileResponse struct {
	Success bool    `json:"success"`
	Data    Profile `json:"data"`
}

type PasswordUpdateRequest struct {
	OldPassword *string `json:"old_password"`
	NewPassword *string `json:"new_password"`
}
