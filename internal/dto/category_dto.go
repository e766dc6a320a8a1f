package dto

// CreateCategoryRequest creates a category. Slug is optional; when empty it
// is derived from the name.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
	Slug string `json:"slug" validate:"omitempty,min=1,max=80"`
}

// CategoryItem is the shape consumed by the product form on mount:
// an array of {id, name} mappings.
type CategoryItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
