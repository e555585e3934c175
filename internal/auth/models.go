package auth

// DevSignInRequest — тело для POST /v1/auth/dev. All fields optional;
// a blank account id falls back to a fixed dev identity.
type DevSignInRequest struct {
	AccountID   string `json:"account_id,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// DevAuthResponse — ответ для POST /v1/auth/dev
type DevAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	AccountID   string `json:"account_id"`
}

// ErrorResponse — стандартный конверт ошибки API.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
