package transport

import "github.com/Skotchmaster/storefront/internal/models"

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty"`
	Email    string `json:"email"    validate:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ProfileResult struct {
	User *models.User `json:"user"`
}

type RegisterResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type CreateProductRequest struct {
	Title       string         `json:"title"       validate:"required"`
	Description string         `json:"description"`
	Category    string         `json:"category"    validate:"required"`
	Type        string         `json:"type"`
	Sizes       []string       `json:"sizes"`
	Size        string         `json:"size"`
	Images      []string       `json:"images"      validate:"required,min=1,dive,required"`
	Stock       string         `json:"stock"`
	Price       float64        `json:"price"       validate:"required,gt=0"`
	PrevPrice   float64        `json:"prevprice"   validate:"gte=0"`
	Qty         int            `json:"qty"         validate:"gte=0"`
	Discount    float64        `json:"discount"    validate:"gte=0,lte=100"`
	Rating      *models.Rating `json:"rating"`
}

// PatchProductRequest carries a partial update; nil fields are left alone.
type PatchProductRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Category    *string        `json:"category"`
	Type        *string        `json:"type"`
	Sizes       []string       `json:"sizes"`
	Size        *string        `json:"size"`
	Stock       *string        `json:"stock"`
	Price       *float64       `json:"price"       validate:"omitnil,gt=0"`
	PrevPrice   *float64       `json:"prevprice"   validate:"omitnil,gte=0"`
	Qty         *int           `json:"qty"         validate:"omitnil,gte=0"`
	Discount    *float64       `json:"discount"    validate:"omitnil,gte=0,lte=100"`
	Rating      *models.Rating `json:"rating"`

	// Images is set from uploaded files only.
	Images []string `json:"-"`
}

type CreateCategoryRequest struct {
	Title string `json:"title" validate:"required"`
}

type UploadResult struct {
	ImageURLs []string `json:"imageUrls"`
}

type SearchResult struct {
	Total    int64            `json:"total"`
	Products []models.Product `json:"products"`
}
