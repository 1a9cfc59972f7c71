package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/models"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/db"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

var clientSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"status":     "status",
	"created_at": "created_at",
}

type ClientRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewClientRepository(db *gorm.DB, logger logger.Interface) *ClientRepository {
	return &ClientRepository{db: db, logger: logger}
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	model := mappers.ClientToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create client", "email", model.Email, "error", err)
		return fmt.Errorf("failed to create client: %w", err)
	}
	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set client ID: %w", err)
	}
	r.logger.Infow("client created", "id", model.ID, "created_by", model.CreatedBy)
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*client.Client, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), id)
}

func (r *ClientRepository) GetByIDForUpdate(ctx context.Context, id uint) (*client.Client, error) {
	return r.get(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), id)
}

func (r *ClientRepository) get(query *gorm.DB, id uint) (*client.Client, error) {
	var model models.ClientModel
	if err := query.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get client by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return mappers.ClientToEntity(&model), nil
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	model := mappers.ClientToModel(c)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ClientModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":           model.Name,
			"contact_person": model.ContactPerson,
			"email":          model.Email,
			"phone":          model.Phone,
			"address":        model.Address,
			"status":         model.Status,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update client", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.ClientModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete client", "id", id, "error", err)
		return fmt.Errorf("failed to delete client: %w", err)
	}
	r.logger.Infow("client deleted", "id", id)
	return nil
}

func (r *ClientRepository) List(ctx context.Context, filter client.Filter) ([]*client.Client, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.ClientModel{}).
		Scopes(authorization.ByOwner("created_by", filter.OwnerID))
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	var rows []*models.ClientModel
	if err := query.
		Order(filter.OrderClause(clientSortColumns, "id DESC")).
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list clients", "error", err)
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return mappers.ClientsToEntities(rows), total, nil
}

func (r *ClientRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.ClientModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email)))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check client email: %w", err)
	}
	return count > 0, nil
}
