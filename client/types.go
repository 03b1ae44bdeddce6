package client

import (
	"fmt"
	"time"
)

// Post is the wire representation served by the listing service.
type Post struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CategoryID  string    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        *User     `json:"user,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Photos      []Photo   `json:"photos"`
}

type Photo struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// PhotoUpload requests one signed upload slot from the service.
type PhotoUpload struct {
	ID          string `json:"id,omitempty"`
	ContentType string `json:"contentType"`
}

// FormatPrice renders a price for display. Zero is the "Free" sentinel;
// amounts above $1000 are abbreviated.
func FormatPrice(price float64) string {
	switch {
	case price > 1000:
		return fmt.Sprintf("$%gk", price/1000)
	case price > 0:
		return fmt.Sprintf("$%g", price)
	default:
		return "Free"
	}
}
