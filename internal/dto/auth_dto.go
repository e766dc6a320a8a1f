package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type RegisterRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Email       string  `json:"email"       validate:"required,email"`
	TaxID       string  `json:"taxId"       validate:"required,min=8,max=20"`
	CompanyName *string `json:"companyName" validate:"omitempty,max=120"`
	Password    string  `json:"password"    validate:"required,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	TaxID       string  `json:"taxId"`
	CompanyName *string `json:"companyName"`
	Role        string  `json:"role"`
}

type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int          `json:"expiresIn"` // seconds
	User         UserResponse `json:"user"`
}
