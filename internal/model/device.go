package model

import (
	"time"

	"gorm.io/gorm"
)

type Device struct {
	gorm.Model
	DeviceID string    `json:"deviceId" gorm:"uniqueIndex;not null"` // physical check-in terminal id
	Name     string    `json:"name"`
	Location string    `json:"location"`
	IsActive bool      `json:"isActive" gorm:"default:true"`
	LastPing time.Time `json:"lastPing"`
}
