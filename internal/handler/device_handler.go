package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"attendfy-backend/internal/model"
	"attendfy-backend/internal/repository"
	"attendfy-backend/internal/validation"
)

type DeviceHandler struct {
	devices repository.DeviceRepository
}

func NewDeviceHandler(devices repository.DeviceRepository) *DeviceHandler {
	return &DeviceHandler{devices: devices}
}

// List returns the active check-in devices.
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	devices, err := h.devices.ListActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(devices)
}

type CreateDeviceRequest struct {
	DeviceID string `json:"deviceId"`
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
}

func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	var req CreateDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := validation.Check(req); errs != nil {
		return validation.Respond(c, errs)
	}
	if req.DeviceID == "" {
		req.DeviceID = uuid.NewString()
	}

	if _, err := h.devices.FindByDeviceID(req.DeviceID); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Device already exists"})
	}

	device := &model.Device{
		DeviceID: req.DeviceID,
		Name:     req.Name,
		Location: req.Location,
		IsActive: true,
		LastPing: time.Now(),
	}
	if err := h.devices.Create(device); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Device already exists"})
	}

	return c.Status(fiber.StatusCreated).JSON(device)
}

type UpdateDeviceRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// UpdateStatus toggles a device's active flag and refreshes its last ping.
func (h *DeviceHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid device id"})
	}

	var req UpdateDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := validation.Check(req); errs != nil {
		return validation.Respond(c, errs)
	}

	device, err := h.devices.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Device not found"})
	}

	device.IsActive = *req.IsActive
	device.LastPing = time.Now()
	if err := h.devices.Update(device); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(device)
}
