package domain

import "time"

// PowerPlant is a generating facility.
type PowerPlant struct {
	ID         string
	Name       string
	CapacityMW float64
	FuelType   *string
	Location   *string
	IsActive   bool
	CreatedAt  time.Time
}

// Substation is a transmission/distribution node.
type Substation struct {
	ID           string
	Name         string
	CapacityMVA  float64
	VoltageLevel *string
	Location     *string
	IsActive     bool
	CreatedAt    time.Time
}
