package model

import (
	"time"

	"gorm.io/datatypes"
)

// Device management tables. Telemetry ingestion and provisioning live outside
// this service, the tables are migrated here so the schema stays in one place.

type DeviceGroup struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Name        string  `gorm:"not null;uniqueIndex"`
	Description *string `gorm:""`
}

func (DeviceGroup) TableName() string {
	return "mitre_device_groups"
}

type DeviceType struct {
	ID          string         `gorm:"primaryKey;size:36"`
	Name        string         `gorm:"not null;uniqueIndex"`
	Description *string        `gorm:""`
	Schema      datatypes.JSON `gorm:""` // telemetry schema
}

func (DeviceType) TableName() string {
	return "mitre_device_types"
}

type Device struct {
	ID          string         `gorm:"primaryKey;size:36"`
	Name        string         `gorm:"not null;index"`
	DeviceType  string         `gorm:"not null;index"`
	Group       *string        `gorm:"column:group;index"`
	Status      string         `gorm:"not null;default:offline;index"` // online, offline, error
	LastSeen    *time.Time     `gorm:""`
	Provisioned bool           `gorm:"not null;default:false"`
	Credentials datatypes.JSON `gorm:""`
	Properties  datatypes.JSON `gorm:""`
}

func (Device) TableName() string {
	return "mitre_devices"
}

type DeviceEvent struct {
	ID        string         `gorm:"primaryKey;size:36"`
	DeviceID  string         `gorm:"size:36;not null;index:idx_mitre_device_events_device_id"`
	EventType string         `gorm:"not null"`
	Payload   datatypes.JSON `gorm:"not null"`
	Timestamp time.Time      `gorm:"not null;index:idx_mitre_device_events_timestamp"`
	Processed bool           `gorm:"not null;default:false"`
}

func (DeviceEvent) TableName() string {
	return "mitre_device_events"
}

// SyncLog records the last sync of a collection by a device.
type SyncLog struct {
	ID            string    `gorm:"primaryKey;size:36"`
	DeviceID      string    `gorm:"size:36;not null;index:idx_mitre_sync_logs_device_id_collection,priority:1"`
	Collection    string    `gorm:"not null;index:idx_mitre_sync_logs_device_id_collection,priority:2"`
	LastSyncedAt  time.Time `gorm:"not null"`
	ConflictCount int       `gorm:"not null;default:0"`
}

func (SyncLog) TableName() string {
	return "mitre_sync_logs"
}
