package entity

import "time"

// Stocktaking registro de conteo físico de un producto.
// Difference = CountedQuantity - SystemQuantity (stock del sistema al momento del conteo).
type Stocktaking struct {
	ID              string
	ProductID       string
	UserID          string
	SystemQuantity  int64
	CountedQuantity int64
	Difference      int64
	Notes           string
	Date            time.Time
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
