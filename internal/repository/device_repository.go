package repository

import (
	"gorm.io/gorm"

	"attendfy-backend/internal/model"
)

type DeviceRepository interface {
	Create(device *model.Device) error
	FindByID(id uint) (*model.Device, error)
	FindByDeviceID(deviceID string) (*model.Device, error)
	ListActive() ([]model.Device, error)
	Update(device *model.Device) error
}

type deviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db}
}

func (r *deviceRepository) Create(device *model.Device) error {
	return r.db.Create(device).Error
}

func (r *deviceRepository) FindByID(id uint) (*model.Device, error) {
	var device model.Device
	if err := r.db.First(&device, id).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) FindByDeviceID(deviceID string) (*model.Device, error) {
	var device model.Device
	err := r.db.Where("device_id = ?", deviceID).First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) ListActive() ([]model.Device, error) {
	var devices []model.Device
	err := r.db.Where("is_active = ?", true).Find(&devices).Error
	return devices, err
}

func (r *deviceRepository) Update(device *model.Device) error {
	return r.db.Save(device).Error
}
