package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/internal/riskconfig/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByCompany(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]domain.Parameter, error) {
	var params []domain.Parameter
	err := db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Find(&params).Error
	if err != nil {
		return nil, err
	}
	return params, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, param *domain.Parameter) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(param).Error
}
