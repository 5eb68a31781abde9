package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dialcoach/dialcoach/domain/call"
	"github.com/dialcoach/dialcoach/internal/database"
)

// SalesCallStore implements call.Store using GORM.
type SalesCallStore struct {
	database.Repository[call.SalesCall, SalesCallModel]
}

var _ call.Store = SalesCallStore{}

// NewSalesCallStore creates a new SalesCallStore.
func NewSalesCallStore(db database.Database) SalesCallStore {
	return SalesCallStore{
		Repository: database.NewRepository[call.SalesCall, SalesCallModel](db, SalesCallMapper{}, "sales call"),
	}
}

// Save creates or updates a sales call.
//
// On create the timestamp columns are left to the engine's DEFAULT
// CURRENT_TIMESTAMP, then the row is read back so the returned entity carries
// the engine-assigned values. On update every column is written exactly as the
// entity carries it; updated_at is never refreshed here.
func (s SalesCallStore) Save(ctx context.Context, c call.SalesCall) (call.SalesCall, error) {
	model := s.Mapper().ToModel(c)

	if model.ID == 0 {
		result := s.DB(ctx).Create(&model)
		if result.Error != nil {
			return call.SalesCall{}, fmt.Errorf("create sales call: %w", result.Error)
		}

		// Read the row back: the engine assigned the id and both timestamps.
		var persisted SalesCallModel
		if err := s.DB(ctx).First(&persisted, model.ID).Error; err != nil {
			return call.SalesCall{}, fmt.Errorf("reload sales call: %w", err)
		}
		return s.Mapper().ToDomain(persisted), nil
	}

	result := s.DB(ctx).Save(&model)
	if result.Error != nil {
		return call.SalesCall{}, fmt.Errorf("update sales call: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Update runs a read-modify-write of one sales call inside a transaction.
// The reloaded row is handed to mutate and the result written back; a mutate
// error rolls the transaction back.
func (s SalesCallStore) Update(ctx context.Context, id int64, mutate func(call.SalesCall) (call.SalesCall, error)) (call.SalesCall, error) {
	return database.WithTransactionResult(ctx, s.Database(), func(tx *gorm.DB) (call.SalesCall, error) {
		var model SalesCallModel
		if err := tx.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return call.SalesCall{}, fmt.Errorf("%w: sales call", database.ErrNotFound)
			}
			return call.SalesCall{}, fmt.Errorf("load sales call: %w", err)
		}

		updated, err := mutate(s.Mapper().ToDomain(model))
		if err != nil {
			return call.SalesCall{}, err
		}

		out := s.Mapper().ToModel(updated)
		if result := tx.Save(&out); result.Error != nil {
			return call.SalesCall{}, fmt.Errorf("update sales call: %w", result.Error)
		}
		return s.Mapper().ToDomain(out), nil
	})
}

// Get retrieves a sales call by ID.
func (s SalesCallStore) Get(ctx context.Context, id int64) (call.SalesCall, error) {
	return s.FindOne(ctx, call.WithID(id))
}

// Delete removes a sales call.
func (s SalesCallStore) Delete(ctx context.Context, c call.SalesCall) error {
	model := s.Mapper().ToModel(c)
	result := s.DB(ctx).Delete(&model)
	if result.Error != nil {
		return fmt.Errorf("delete sales call: %w", result.Error)
	}
	return nil
}
