package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Collection{}, &Field{}, &Relation{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Content{}, &Revision{}, &Translation{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Taxonomy{}, &Navigation{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&User{}, &OAuthIdentity{}, &RefreshToken{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&DeviceGroup{}, &DeviceType{}, &Device{}, &DeviceEvent{}, &SyncLog{}); err != nil {
		return err
	}

	return nil
}
