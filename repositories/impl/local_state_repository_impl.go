package impl

import (
	"time"

	"PinguinAgent/models"
	"PinguinAgent/repositories"

	"gorm.io/gorm"
)

type LocalStateRepositoryImpl struct {
	DB *gorm.DB
}

func NewLocalStateRepository(db *gorm.DB) repositories.LocalStateRepository {
	return &LocalStateRepositoryImpl{DB: db}
}

func (r *LocalStateRepositoryImpl) SaveBlockedSet(appPackages []string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.BlockedApp{}).Error; err != nil {
			return err
		}
		now := time.Now()
		for _, pkg := range appPackages {
			if err := tx.Create(&models.BlockedApp{AppPackage: pkg, BlockedAt: now}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *LocalStateRepositoryImpl) LoadBlockedSet() ([]string, error) {
	var rows []models.BlockedApp
	if err := r.DB.Find(&rows).Error; err != nil {
		return nil, err
	}
	packages := make([]string, 0, len(rows))
	for _, row := range rows {
		packages = append(packages, row.AppPackage)
	}
	return packages, nil
}

func (r *LocalStateRepositoryImpl) SavePass(pass models.SyncPass) error {
	return r.DB.Save(&pass).Error
}

func (r *LocalStateRepositoryImpl) LatestPass() (models.SyncPass, error) {
	var pass models.SyncPass
	if err := r.DB.Order("started_at desc").First(&pass).Error; err != nil {
		return models.SyncPass{}, err
	}
	return pass, nil
}
