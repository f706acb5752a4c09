package store

import (
	"context"
	"fmt"
	"gorm.io/gorm"
	"hello-world-site/app/server/constants"
	"hello-world-site/app/server/models"
	"hello-world-site/app/server/utils"
	"math"
)

type AccessLogStore struct {
	db *gorm.DB
}

func NewAccessLogStore(db *gorm.DB) *AccessLogStore {
	return &AccessLogStore{db: db}
}

// Append records one visit. access_time is assigned by the database.
func (s *AccessLogStore) Append(ctx context.Context, ip, userAgent string) error {
	entry := models.AccessLog{
		IPAddress: utils.Truncate(ip, constants.MaxIPAddressLength),
	}
	if userAgent != "" {
		entry.UserAgent = &userAgent
	}

	if err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Create(&entry).Error
	}); err != nil {
		return fmt.Errorf("append access log: %w", err)
	}
	return nil
}

// List returns one page of entries, most recent first. page is 1-based;
// callers clamp page and pageSize beforehand. A page whose offset does not
// fit in an int is empty.
func (s *AccessLogStore) List(ctx context.Context, page, pageSize int) ([]models.AccessLog, error) {
	logs := []models.AccessLog{}
	if page-1 > math.MaxInt/pageSize {
		return logs, nil
	}
	if err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Order("access_time DESC").Order("id DESC").
			Limit(pageSize).
			Offset((page - 1) * pageSize).
			Find(&logs).Error
	}); err != nil {
		return nil, fmt.Errorf("list access logs: %w", err)
	}
	return logs, nil
}

func (s *AccessLogStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Model(&models.AccessLog{}).Count(&count).Error
	}); err != nil {
		return 0, fmt.Errorf("count access logs: %w", err)
	}
	return count, nil
}
