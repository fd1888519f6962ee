package repository

import (
	"errors"

	"github.com/surveyportal/surveyportal/internal/model"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	FindURL(kind int, ownerID uint) (*string, error)
	FindURLsByOwners(kind int, ownerIDs []uint) (map[uint]string, error)
	Upsert(kind int, ownerID uint, url string) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) FindURL(kind int, ownerID uint) (*string, error) {
	var doc model.Document
	err := r.db.Where("kind = ? AND owner_id = ?", kind, ownerID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.URL, nil
}

func (r *documentRepository) FindURLsByOwners(kind int, ownerIDs []uint) (map[uint]string, error) {
	urls := make(map[uint]string, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return urls, nil
	}

	var docs []model.Document
	err := r.db.Where("kind = ? AND owner_id IN ?", kind, ownerIDs).Find(&docs).Error
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		urls[doc.OwnerID] = doc.URL
	}
	return urls, nil
}

func (r *documentRepository) Upsert(kind int, ownerID uint, url string) error {
	var doc model.Document
	err := r.db.Where("kind = ? AND owner_id = ?", kind, ownerID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&model.Document{Kind: kind, OwnerID: ownerID, URL: url}).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&doc).Update("url", url).Error
}
