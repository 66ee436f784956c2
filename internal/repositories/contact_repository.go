package repositories

import (
	"context"

	"github.com/youdeservebetter/backend/internal/models"
	"gorm.io/gorm"
)

// ContactRepository stores contact form messages
type ContactRepository interface {
	CreateMessage(ctx context.Context, msg *models.ContactMessage) error
}

// PostgresContactRepository implements ContactRepository for PostgreSQL
type PostgresContactRepository struct {
	db *gorm.DB
}

func NewPostgresContactRepository(db *gorm.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) CreateMessage(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// AutoMigrate creates or updates the PostgreSQL tables this service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ContactMessage{},
	)
}
