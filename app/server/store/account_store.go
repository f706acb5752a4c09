package store

import (
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"hello-world-site/app/server/models"
	"hello-world-site/app/server/password"
	"sync"
	"time"
)

// Account is an admin account without its password hash.
type Account struct {
	ID        uint
	Username  string
	CreatedAt time.Time
}

func accountFrom(m *models.AdminAccount) *Account {
	return &Account{ID: m.ID, Username: m.Username, CreatedAt: m.CreatedAt}
}

type AccountStore struct {
	db *gorm.DB
	l  *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAccountStore(db *gorm.DB, l *zap.Logger) *AccountStore {
	return &AccountStore{db: db, l: l}
}

// Create inserts the account when the username is free. created is false when
// an account with that username already exists; it is left untouched.
func (s *AccountStore) Create(ctx context.Context, username, plain string) (created bool, err error) {
	hashed, err := password.Hash(plain)
	if err != nil {
		return false, err
	}

	err = withTx(ctx, s.db, func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).Create(&models.AdminAccount{
			Username:     username,
			PasswordHash: hashed,
		})
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("create admin %q: %w", username, err)
	}
	return created, nil
}

// Verify checks the password for username. It returns nil without error
// when the username is unknown or the password does not match.
func (s *AccountStore) Verify(ctx context.Context, username, plain, clientIP string) (*Account, error) {
	record, err := s.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		// 用户不存在时也做一次比较，让响应时间与密码错误时一致
		_, _ = password.Check(plain, s.dummy())
		s.l.Warn("admin login failed", zap.String("username", username), zap.String("ip", clientIP), zap.String("reason", "unknown username"))
		return nil, nil
	}

	match, err := password.Check(plain, record.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("check password of %q: %w", username, err)
	}
	if !match {
		s.l.Warn("admin login failed", zap.String("username", username), zap.String("ip", clientIP), zap.String("reason", "wrong password"))
		return nil, nil
	}

	// 旧格式的 hash 在登录成功时升级
	if password.NeedsRehash(record.PasswordHash) {
		if err := s.rehash(ctx, record.ID, plain); err != nil {
			s.l.Error("failed to upgrade password hash", zap.String("username", username), zap.Error(err))
		} else {
			s.l.Info("password hash upgraded", zap.String("username", username))
		}
	}

	s.l.Info("admin login succeeded", zap.String("username", username), zap.String("ip", clientIP))
	return accountFrom(record), nil
}

func (s *AccountStore) GetByID(ctx context.Context, id uint) (*Account, error) {
	var record models.AdminAccount
	if err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		return tx.First(&record, "id = ?", id).Error
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin %d: %w", id, err)
	}
	return accountFrom(&record), nil
}

// GetByUsername returns the full record including the password hash. Only
// the store itself and password maintenance should need it.
func (s *AccountStore) GetByUsername(ctx context.Context, username string) (*models.AdminAccount, error) {
	var record models.AdminAccount
	if err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		return tx.First(&record, "username = ?", username).Error
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin %q: %w", username, err)
	}
	return &record, nil
}

// SetPassword replaces the password hash of username. It returns ErrNotFound
// when no such account exists.
func (s *AccountStore) SetPassword(ctx context.Context, username, plain string) error {
	hashed, err := password.Hash(plain)
	if err != nil {
		return err
	}

	var affected int64
	if err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		res := tx.Model(&models.AdminAccount{}).
			Where("username = ?", username).
			Update("password_hash", hashed)
		affected = res.RowsAffected
		return res.Error
	}); err != nil {
		return fmt.Errorf("set password of %q: %w", username, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.l.Info("admin password changed", zap.String("username", username))
	return nil
}

func (s *AccountStore) rehash(ctx context.Context, id uint, plain string) error {
	hashed, err := password.Hash(plain)
	if err != nil {
		return err
	}
	return withTx(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Model(&models.AdminAccount{}).
			Where("id = ?", id).
			Update("password_hash", hashed).Error
	})
}

func (s *AccountStore) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := password.Hash("dummy-password")
		if err != nil {
			s.l.Error("failed to create dummy hash", zap.Error(err))
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
