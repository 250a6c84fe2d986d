package repository

import (
	"context"
	"time"

	"docvault/internal/domain"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

type documentModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Title     string    `gorm:"column:title;size:255;not null"`
	Category  string    `gorm:"column:category;size:100;index"`
	Filename  string    `gorm:"column:filename;size:255;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (documentModel) TableName() string { return "documents" }

func toDomainDocument(m documentModel) *domain.Document {
	return &domain.Document{
		ID:        m.ID,
		Title:     m.Title,
		Category:  m.Category,
		Filename:  m.Filename,
		CreatedAt: m.CreatedAt,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) error {
	m := documentModel{
		Title:     d.Title,
		Category:  d.Category,
		Filename:  d.Filename,
		CreatedAt: d.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*d = *toDomainDocument(m)
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	var m documentModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainDocument(m), nil
}

// List returns documents newest first. An empty category means no filter;
// otherwise the category must match exactly.
func (r *DocumentRepository) List(ctx context.Context, category string) ([]*domain.Document, error) {
	q := r.db.WithContext(ctx).Model(&documentModel{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var rows []documentModel
	if err := q.Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	docs := make([]*domain.Document, 0, len(rows))
	for _, m := range rows {
		docs = append(docs, toDomainDocument(m))
	}
	return docs, nil
}

// Categories returns the distinct categories in alphabetical order.
func (r *DocumentRepository) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.db.WithContext(ctx).
		Model(&documentModel{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &cats).Error
	return cats, err
}

func (r *DocumentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&documentModel{}).Count(&n).Error
	return n, err
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&documentModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
