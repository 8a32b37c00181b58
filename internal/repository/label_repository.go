package repository

import (
	"github.com/yukikurage/task-manager/internal/models"
	"gorm.io/gorm"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Create(label).Error
}

func (r *GormLabelRepository) FindByID(id uint64) (*models.Label, error) {
	var label models.Label
	if err := r.db.First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *GormLabelRepository) FindByName(name string) (*models.Label, error) {
	var label models.Label
	if err := r.db.Where("name = ?", name).First(&label).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *GormLabelRepository) FindByIDs(ids []uint64) ([]models.Label, error) {
	var labels []models.Label
	if len(ids) == 0 {
		return labels, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *GormLabelRepository) FindAll() ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.Order("labels.id").Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Save(label).Error
}

func (r *GormLabelRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Label{}, id).Error
}
