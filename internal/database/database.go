package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookfinder/internal/collections"
	"github.com/mrlokans/bookfinder/internal/entities"
)

// Database is the durable storage behind the user collections. Every
// collection lives in its own row of the collection_slots table.
type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string, logLevel logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.CollectionSlot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if logLevel >= logger.Info {
		log.Printf("Database initialized successfully at %s", dbPath)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) GetSlot(key string) (*entities.CollectionSlot, error) {
	var slot entities.CollectionSlot
	err := d.DB.Where("key = ?", key).First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (d *Database) SetSlot(key, value string) error {
	var slot entities.CollectionSlot
	result := d.DB.Where("key = ?", key).First(&slot)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		slot = entities.CollectionSlot{
			Key:   key,
			Value: value,
		}
		return d.DB.Create(&slot).Error
	} else if result.Error != nil {
		return result.Error
	}

	slot.Value = value
	return d.DB.Save(&slot).Error
}

// Load implements collections.Storage.
func (d *Database) Load(key string) ([]byte, error) {
	slot, err := d.GetSlot(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, collections.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", key, err)
	}
	return []byte(slot.Value), nil
}

// Save implements collections.Storage.
func (d *Database) Save(key string, value []byte) error {
	if err := d.SetSlot(key, string(value)); err != nil {
		return fmt.Errorf("save slot %s: %w", key, err)
	}
	return nil
}
