package dto

import (
	"time"

	"github.com/bpdb/power-portal/internal/domain"
)

// PowerPlantRequest creates or patches a plant.
type PowerPlantRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=1,max=200"`
	CapacityMW *float64 `json:"capacity_mw" validate:"omitempty,gte=0"`
	FuelType   *string  `json:"fuel_type" validate:"omitempty,max=64"`
	Location   *string  `json:"location" validate:"omitempty,max=200"`
	IsActive   *bool    `json:"is_active"`
}

// SubstationRequest creates or patches a substation.
type SubstationRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=200"`
	CapacityMVA  *float64 `json:"capacity_mva" validate:"omitempty,gte=0"`
	VoltageLevel *string  `json:"voltage_level" validate:"omitempty,max=32"`
	Location     *string  `json:"location" validate:"omitempty,max=200"`
	IsActive     *bool    `json:"is_active"`
}

// PowerPlantResponse view.
type PowerPlantResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CapacityMW float64   `json:"capacity_mw"`
	FuelType   *string   `json:"fuel_type,omitempty"`
	Location   *string   `json:"location,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubstationResponse view.
type SubstationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CapacityMVA  float64   `json:"capacity_mva"`
	VoltageLevel *string   `json:"voltage_level,omitempty"`
	Location     *string   `json:"location,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// PowerPlantFromDomain maps a plant.
func PowerPlantFromDomain(p *domain.PowerPlant) PowerPlantResponse {
	return PowerPlantResponse{
		ID:         p.ID,
		Name:       p.Name,
		CapacityMW: p.CapacityMW,
		FuelType:   p.FuelType,
		Location:   p.Location,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
	}
}

// PowerPlantsFromDomain maps a slice.
func PowerPlantsFromDomain(in []domain.PowerPlant) []PowerPlantResponse {
	out := make([]PowerPlantResponse, len(in))
	for i := range in {
		out[i] = PowerPlantFromDomain(&in[i])
	}
	return out
}

// SubstationFromDomain maps a substation.
func SubstationFromDomain(s *domain.Substation) SubstationResponse {
	return SubstationResponse{
		ID:           s.ID,
		Name:         s.Name,
		CapacityMVA:  s.CapacityMVA,
		VoltageLevel: s.VoltageLevel,
		Location:     s.Location,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
	}
}

// SubstationsFromDomain maps a slice.
func SubstationsFromDomain(in []domain.Substation) []SubstationResponse {
	out := make([]SubstationResponse, len(in))
	for i := range in {
		out[i] = SubstationFromDomain(&in[i])
	}
	return out
}
