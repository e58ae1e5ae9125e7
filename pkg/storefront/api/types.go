package api

import (
	"time"

	"github.com/google/uuid"
)

// User is the profile slice of an account the storefront displays and
// persists alongside the session token.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Artist struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Version struct {
	ID               uuid.UUID `json:"id"`
	VersionName      string    `json:"version_name"`
	PriceDiff        Number    `json:"price_diff"`
	PackagingDetails string    `json:"packaging_details"`
	IsLimited        bool      `json:"is_limited"`
	StockQuantity    int       `json:"stock_quantity"`
}

type Album struct {
	ID           uuid.UUID `json:"id"`
	ArtistID     uuid.UUID `json:"artist_id"`
	ArtistName   string    `json:"artist_name"`
	Title        string    `json:"title"`
	BasePrice    Number    `json:"base_price"`
	Description  string    `json:"description"`
	ReleaseDate  time.Time `json:"release_date"`
	Status       string    `json:"status"`
	MainImageURL string    `json:"main_image_url"`
	Versions     []Version `json:"versions"`
	CreatedAt    time.Time `json:"created_at"`
}

type Discount struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Percent     Number    `json:"percent"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsActive    bool      `json:"is_active"`
}

type CartItem struct {
	ID              uuid.UUID `json:"id"`
	VersionID       uuid.UUID `json:"version_id"`
	AlbumID         uuid.UUID `json:"album_id"`
	AlbumTitle      string    `json:"album_title"`
	ArtistName      string    `json:"artist_name"`
	VersionName     string    `json:"version_name"`
	ImageURL        string    `json:"image_url"`
	Quantity        int       `json:"quantity"`
	BasePrice       Number    `json:"base_price"`
	DiscountPercent Number    `json:"discount_percent"`
	FinalPrice      Number    `json:"final_price"`
}

// CartTotals defaults to zero values when the response omits it.
type CartTotals struct {
	BaseTotal     Number `json:"base_total"`
	FinalTotal    Number `json:"final_total"`
	TotalDiscount Number `json:"total_discount"`
}

type Cart struct {
	Items  []CartItem `json:"items"`
	Totals CartTotals `json:"totals"`
}

type OrderItem struct {
	VersionID       uuid.UUID `json:"version_id"`
	AlbumTitle      string    `json:"album_title"`
	ArtistName      string    `json:"artist_name"`
	VersionName     string    `json:"version_name"`
	UnitPrice       Number    `json:"unit_price"`
	DiscountPercent Number    `json:"discount_percent"`
	FinalPrice      Number    `json:"final_price"`
	Quantity        int       `json:"quantity"`
}

type Order struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Status      string      `json:"status"`
	BaseTotal   Number      `json:"base_total"`
	TotalAmount Number      `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `json:"items"`
}

type WishlistItem struct {
	ID         uuid.UUID `json:"id"`
	AlbumID    uuid.UUID `json:"album_id"`
	Title      string    `json:"title"`
	ArtistName string    `json:"artist_name"`
	ImageURL   string    `json:"image_url"`
	BasePrice  Number    `json:"base_price"`
	Status     string    `json:"status"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type ArtistList struct {
	Artists []Artist `json:"artists"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
}

type AlbumList struct {
	Albums []Album `json:"albums"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

type OrderList struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

type UserList struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

type DiscountList struct {
	Discounts []Discount `json:"discounts"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
}
