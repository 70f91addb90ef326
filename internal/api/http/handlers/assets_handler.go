package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bpdb/power-portal/internal/api/dto"
	"github.com/bpdb/power-portal/internal/repository"
	"github.com/bpdb/power-portal/internal/service"
)

// AssetsHandler exposes the power plant and substation screens.
type AssetsHandler struct {
	assets *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assets *service.AssetService) *AssetsHandler {
	return &AssetsHandler{assets: assets}
}

func parseAssetFilter(c *fiber.Ctx) repository.AssetFilter {
	return repository.AssetFilter{
		Active:     parseBoolQuery(c, "active"),
		SearchTerm: c.Query("search"),
		Page:       parsePage(c),
	}
}

// ListPowerPlants handles GET /management/power-plants.
func (h *AssetsHandler) ListPowerPlants(c *fiber.Ctx) error {
	plants, err := h.assets.ListPowerPlants(c.UserContext(), parseAssetFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.PowerPlantsFromDomain(plants)))
}

// GetPowerPlant handles GET /management/power-plants/:id.
func (h *AssetsHandler) GetPowerPlant(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	plant, err := h.assets.GetPowerPlant(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.PowerPlantFromDomain(plant)))
}

// CreatePowerPlant handles POST /management/power-plants.
func (h *AssetsHandler) CreatePowerPlant(c *fiber.Ctx) error {
	var req dto.PowerPlantRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	plant, err := h.assets.CreatePowerPlant(c.UserContext(), plantInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.PowerPlantFromDomain(plant)))
}

// UpdatePowerPlant handles PATCH /management/power-plants/:id.
func (h *AssetsHandler) UpdatePowerPlant(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.PowerPlantRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	plant, err := h.assets.UpdatePowerPlant(c.UserContext(), id, plantInput(req))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.PowerPlantFromDomain(plant)))
}

// DeletePowerPlant handles DELETE /management/power-plants/:id.
func (h *AssetsHandler) DeletePowerPlant(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.assets.DeletePowerPlant(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListSubstations handles GET /management/substations.
func (h *AssetsHandler) ListSubstations(c *fiber.Ctx) error {
	subs, err := h.assets.ListSubstations(c.UserContext(), parseAssetFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.SubstationsFromDomain(subs)))
}

// GetSubstation handles GET /management/substations/:id.
func (h *AssetsHandler) GetSubstation(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	sub, err := h.assets.GetSubstation(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.SubstationFromDomain(sub)))
}

// CreateSubstation handles POST /management/substations.
func (h *AssetsHandler) CreateSubstation(c *fiber.Ctx) error {
	var req dto.SubstationRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	sub, err := h.assets.CreateSubstation(c.UserContext(), substationInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.SubstationFromDomain(sub)))
}

// UpdateSubstation handles PATCH /management/substations/:id.
func (h *AssetsHandler) UpdateSubstation(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.SubstationRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	sub, err := h.assets.UpdateSubstation(c.UserContext(), id, substationInput(req))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.SubstationFromDomain(sub)))
}

// DeleteSubstation handles DELETE /management/substations/:id.
func (h *AssetsHandler) DeleteSubstation(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.assets.DeleteSubstation(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func plantInput(req dto.PowerPlantRequest) service.PowerPlantInput {
	return service.PowerPlantInput{
		Name:       req.Name,
		CapacityMW: req.CapacityMW,
		FuelType:   req.FuelType,
		Location:   req.Location,
		IsActive:   req.IsActive,
	}
}

func substationInput(req dto.SubstationRequest) service.SubstationInput {
	return service.SubstationInput{
		Name:         req.Name,
		CapacityMVA:  req.CapacityMVA,
		VoltageLevel: req.VoltageLevel,
		Location:     req.Location,
		IsActive:     req.IsActive,
	}
}
