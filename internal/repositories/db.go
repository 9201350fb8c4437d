package repositories

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rohits-web03/lyricjournal/internal/errs"
	"github.com/rohits-web03/lyricjournal/internal/models"
)

type userRow struct {
	Key          string    `gorm:"primaryKey"`
	Username     string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

type lyricRow struct {
	Owner     string `gorm:"primaryKey"`
	Position  int    `gorm:"primaryKey;autoIncrement:false"` // 0 is the newest entry
	LyricID   int64  `gorm:"not null;index"`
	Title     string `gorm:"type:text;not null"`
	Artist    string `gorm:"type:text;not null"`
	LyricText string `gorm:"type:text;not null"`
	Note      string `gorm:"type:text;not null;default:''"`
	Tags      string `gorm:"type:jsonb;not null"`
	DateAdded string `gorm:"type:char(10);not null"`
}

func (lyricRow) TableName() string { return "lyric_entries" }

// GormStore keeps the backing document in PostgreSQL. The document is still
// read and written as a whole; Save replaces every row in one transaction.
type GormStore struct {
	db *gorm.DB
}

// ConnectDatabase opens the PostgreSQL database at dsn and migrates the tables.
func ConnectDatabase(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errs.Storage("connect database", err)
	}
	if err := db.AutoMigrate(&userRow{}, &lyricRow{}); err != nil {
		return nil, errs.Storage("migrate database", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load(ctx context.Context) (*models.Document, error) {
	var users []userRow
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, errs.Storage("read users", err)
	}
	var rows []lyricRow
	if err := s.db.WithContext(ctx).Order("owner, position").Find(&rows).Error; err != nil {
		return nil, errs.Storage("read lyrics", err)
	}

	doc := models.NewDocument()
	for _, u := range users {
		doc.Users[u.Key] = models.User{
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			CreatedAt:    u.CreatedAt,
		}
		doc.Lyrics[u.Key] = []models.LyricEntry{}
	}
	for _, r := range rows {
		entry, err := r.entry()
		if err != nil {
			return nil, err
		}
		doc.Lyrics[r.Owner] = append(doc.Lyrics[r.Owner], entry)
	}
	return doc, nil
}

func (s *GormStore) Save(ctx context.Context, doc *models.Document) error {
	users := make([]userRow, 0, len(doc.Users))
	for key, u := range doc.Users {
		users = append(users, userRow{
			Key:          key,
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			CreatedAt:    u.CreatedAt,
		})
	}
	var rows []lyricRow
	for owner, entries := range doc.Lyrics {
		for i, e := range entries {
			row, err := newLyricRow(owner, i, e)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&lyricRow{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&userRow{}).Error; err != nil {
			return err
		}
		if len(users) > 0 {
			if err := tx.CreateInBatches(users, 500).Error; err != nil {
				return err
			}
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, 500).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.Storage("write database", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
