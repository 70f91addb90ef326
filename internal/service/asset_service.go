package service

import (
	"context"
	"strings"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/repository"
	apperrors "github.com/bpdb/power-portal/pkg/util"
)

// PowerPlantInput carries plant fields. Nil pointers leave values untouched
// on update.
type PowerPlantInput struct {
	Name       *string
	CapacityMW *float64
	FuelType   *string
	Location   *string
	IsActive   *bool
}

// SubstationInput carries substation fields with the same update semantics.
type SubstationInput struct {
	Name         *string
	CapacityMVA  *float64
	VoltageLevel *string
	Location     *string
	IsActive     *bool
}

// AssetService manages power plants and substations.
type AssetService struct {
	plants      repository.PowerPlantRepository
	substations repository.SubstationRepository
}

// NewAssetService creates the service.
func NewAssetService(plants repository.PowerPlantRepository, substations repository.SubstationRepository) *AssetService {
	return &AssetService{plants: plants, substations: substations}
}

// ListPowerPlants returns plants matching filter.
func (s *AssetService) ListPowerPlants(ctx context.Context, filter repository.AssetFilter) ([]domain.PowerPlant, error) {
	plants, err := s.plants.List(ctx, filter)
	return plants, apperrors.MapError(err)
}

// GetPowerPlant fetches a plant.
func (s *AssetService) GetPowerPlant(ctx context.Context, id string) (*domain.PowerPlant, error) {
	plant, err := s.plants.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "power plant", id)
	}
	return plant, nil
}

// CreatePowerPlant registers a plant. Name and capacity are required.
func (s *AssetService) CreatePowerPlant(ctx context.Context, in PowerPlantInput) (*domain.PowerPlant, error) {
	if in.Name == nil || in.CapacityMW == nil {
		return nil, apperrors.NewValidationError("name and capacity_mw are required", nil)
	}
	plant := &domain.PowerPlant{IsActive: true}
	if err := applyPlant(plant, in); err != nil {
		return nil, err
	}
	if err := s.plants.Create(ctx, plant); err != nil {
		return nil, apperrors.MapError(err)
	}
	return plant, nil
}

// UpdatePowerPlant applies a partial update.
func (s *AssetService) UpdatePowerPlant(ctx context.Context, id string, in PowerPlantInput) (*domain.PowerPlant, error) {
	plant, err := s.GetPowerPlant(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPlant(plant, in); err != nil {
		return nil, err
	}
	if err := s.plants.Update(ctx, plant); err != nil {
		return nil, notFoundOr(err, "power plant", id)
	}
	return plant, nil
}

// DeletePowerPlant removes a plant.
func (s *AssetService) DeletePowerPlant(ctx context.Context, id string) error {
	if err := s.plants.Delete(ctx, id); err != nil {
		return notFoundOr(err, "power plant", id)
	}
	return nil
}

// ListSubstations returns substations matching filter.
func (s *AssetService) ListSubstations(ctx context.Context, filter repository.AssetFilter) ([]domain.Substation, error) {
	subs, err := s.substations.List(ctx, filter)
	return subs, apperrors.MapError(err)
}

// GetSubstation fetches a substation.
func (s *AssetService) GetSubstation(ctx context.Context, id string) (*domain.Substation, error) {
	sub, err := s.substations.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "substation", id)
	}
	return sub, nil
}

// CreateSubstation registers a substation. Name and capacity are required.
func (s *AssetService) CreateSubstation(ctx context.Context, in SubstationInput) (*domain.Substation, error) {
	if in.Name == nil || in.CapacityMVA == nil {
		return nil, apperrors.NewValidationError("name and capacity_mva are required", nil)
	}
	sub := &domain.Substation{IsActive: true}
	if err := applySubstation(sub, in); err != nil {
		return nil, err
	}
	if err := s.substations.Create(ctx, sub); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sub, nil
}

// UpdateSubstation applies a partial update.
func (s *AssetService) UpdateSubstation(ctx context.Context, id string, in SubstationInput) (*domain.Substation, error) {
	sub, err := s.GetSubstation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySubstation(sub, in); err != nil {
		return nil, err
	}
	if err := s.substations.Update(ctx, sub); err != nil {
		return nil, notFoundOr(err, "substation", id)
	}
	return sub, nil
}

// DeleteSubstation removes a substation.
func (s *AssetService) DeleteSubstation(ctx context.Context, id string) error {
	if err := s.substations.Delete(ctx, id); err != nil {
		return notFoundOr(err, "substation", id)
	}
	return nil
}

func applyPlant(p *domain.PowerPlant, in PowerPlantInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return apperrors.NewValidationError("name must not be blank", map[string]any{"name": "blank"})
		}
		p.Name = name
	}
	if in.CapacityMW != nil {
		if *in.CapacityMW < 0 {
			return apperrors.NewValidationError("capacity must not be negative", map[string]any{"capacity_mw": *in.CapacityMW})
		}
		p.CapacityMW = *in.CapacityMW
	}
	if in.FuelType != nil {
		p.FuelType = in.FuelType
	}
	if in.Location != nil {
		p.Location = in.Location
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return nil
}

func applySubstation(sub *domain.Substation, in SubstationInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return apperrors.NewValidationError("name must not be blank", map[string]any{"name": "blank"})
		}
		sub.Name = name
	}
	if in.CapacityMVA != nil {
		if *in.CapacityMVA < 0 {
			return apperrors.NewValidationError("capacity must not be negative", map[string]any{"capacity_mva": *in.CapacityMVA})
		}
		sub.CapacityMVA = *in.CapacityMVA
	}
	if in.VoltageLevel != nil {
		sub.VoltageLevel = in.VoltageLevel
	}
	if in.Location != nil {
		sub.Location = in.Location
	}
	if in.IsActive != nil {
		sub.IsActive = *in.IsActive
	}
	return nil
}
