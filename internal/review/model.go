package review

import "time"

type Review struct {
	ID          uint      `json:"id"`
	ProductID   uint      `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

type Input struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
