package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"        json:"id"`
	Username       string    `gorm:"not null"                    json:"username"`
	Email          string    `gorm:"uniqueIndex;not null"        json:"email"`
	PasswordHash   string    `gorm:"not null"                    json:"-"`
	Role           string    `gorm:"not null;default:user"       json:"role"`
	ProfilePicture string    `                                   json:"profilePicture,omitempty"`
	CreatedAt      time.Time `                                   json:"createdAt"`
	UpdatedAt      time.Time `                                   json:"updatedAt"`
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"         json:"id"`
	Title       string    `gorm:"not null"                     json:"title"`
	Description string    `                                    json:"description"`
	Category    string    `gorm:"index;not null"               json:"category"`
	Type        string    `                                    json:"type"`
	Sizes       []string  `gorm:"type:text;serializer:json"    json:"sizes"`
	Size        string    `                                    json:"size,omitempty"`
	Images      []string  `gorm:"type:text;serializer:json"    json:"images"`
	Stock       string    `                                    json:"stock"`
	Price       float64   `gorm:"not null"                     json:"price"`
	PrevPrice   float64   `                                    json:"prevprice"`
	Qty         int       `gorm:"default:0"                    json:"qty"`
	Discount    float64   `gorm:"default:0"                    json:"discount"`
	TotalPrice  float64   `gorm:"default:0"                    json:"totalprice"`
	Rating      *Rating   `gorm:"type:text;serializer:json"    json:"rating,omitempty"`
	CreatedAt   time.Time `                                    json:"createdAt"`
	UpdatedAt   time.Time `                                    json:"updatedAt"`
}

// Category keeps a denormalized list of the ids of products whose Category
// field equals Title.
type Category struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"       json:"id"`
	Title     string      `gorm:"uniqueIndex;not null"       json:"title"`
	Products  []uuid.UUID `gorm:"type:text;serializer:json"  json:"products"`
	CreatedAt time.Time   `                                  json:"createdAt"`
	UpdatedAt time.Time   `                                  json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TotalPrice applies a percentage discount to price.
func TotalPrice(price, discount float64) float64 {
	return price - price*discount/100
}

func (p *Product) RecomputeTotal() {
	p.TotalPrice = TotalPrice(p.Price, p.Discount)
}
