package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateProductRequest is the body of POST /api/products. Field names match
// the submission workflow wire contract; price arrives as a JSON number.
type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required,min=1,max=120"`
	Type        string          `json:"type"        validate:"required,oneof=unit box package kilogram liter"`
	Description *string         `json:"description" validate:"omitempty,max=2000"`
	// Zero is a valid price; only negatives are rejected, matching the
	// client-side submission rules.
	Price       decimal.Decimal `json:"price"       validate:"min=0"`
	CategoryID  string          `json:"categoryId"  validate:"required,uuid"`
	ImageURL    *string         `json:"imageUrl"    validate:"omitempty,url"`
	Barcode     string          `json:"barcode"     validate:"required,min=1,max=64"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name       string `form:"name"`
	CategoryID string `form:"categoryId"`
	Barcode    string `form:"barcode"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        *string         `json:"type"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
	ImageURL    *string         `json:"imageUrl"`
	Barcode     string          `json:"barcode"`
	CreatedAt   string          `json:"createdAt"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}
