package review

import "time"

type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateParams struct {
	ProductID  string
	AuthorID   string
	AuthorName string
	Rating     int
	Comment    string
}
