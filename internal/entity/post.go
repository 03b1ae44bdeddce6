package entity

import "time"

// Post is a marketplace listing. Photos hold only storage keys; the bytes
// live in object storage under bazaar/<photo id>.
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
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the owner projection exposed on posts: id and email only.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
