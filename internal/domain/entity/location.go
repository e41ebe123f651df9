package entity

import "time"

// Location representa una ubicación física de almacenamiento (bodega, estante, zona).
type Location struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
