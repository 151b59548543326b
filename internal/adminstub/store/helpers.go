package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// getWhere returns the single T matching the realm-scoped key.
func getWhere[T any](db *gorm.DB, ctx context.Context, realm, field string, value any, notFoundErr error) (*T, error) {
	var result T
	err := db.WithContext(ctx).Where("realm = ? AND "+field+" = ?", realm, value).First(&result).Error
	if err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// listRealm returns every T of realm in creation order, never nil.
func listRealm[T any](db *gorm.DB, ctx context.Context, realm string) ([]*T, error) {
	results := []*T{}
	if err := db.WithContext(ctx).Where("realm = ?", realm).Order("seq ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// nextSeq returns the next creation sequence for T in realm.
func nextSeq[T any](tx *gorm.DB, realm string) (int64, error) {
	var zero T
	var last int64
	row := tx.Model(&zero).Where("realm = ?", realm).Select("COALESCE(MAX(seq), 0)").Row()
	if err := row.Scan(&last); err != nil {
		return 0, err
	}
	return last + 1, nil
}

// createWithID assigns a UUID and a sequence, then inserts entity. Unique
// constraint violations become dupErr.
func createWithID[T any](db *gorm.DB, ctx context.Context, realm string, entity *T, set func(e *T, id string, seq int64), dupErr error) (string, error) {
	id := uuid.New().String()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextSeq[T](tx, realm)
		if err != nil {
			return err
		}
		set(entity, id, seq)
		return tx.Create(entity).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return "", dupErr
		}
		return "", err
	}
	return id, nil
}

// deleteWhere removes the realm-scoped T, returning notFoundErr when
// nothing matched.
func deleteWhere[T any](db *gorm.DB, ctx context.Context, realm, field string, value any, notFoundErr error) error {
	var zero T
	result := db.WithContext(ctx).Where("realm = ? AND "+field+" = ?", realm, value).Delete(&zero)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundErr
	}
	return nil
}
