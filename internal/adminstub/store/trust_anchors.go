package store

import (
	"context"

	"gorm.io/gorm"
)

func (s *GORMStore) ListTrustAnchors(ctx context.Context, realm string) ([]*TrustAnchor, error) {
	return listRealm[TrustAnchor](s.db, ctx, realm)
}

func (s *GORMStore) GetTrustAnchor(ctx context.Context, realm, internalID string) (*TrustAnchor, error) {
	return getWhere[TrustAnchor](s.db, ctx, realm, "internal_id", internalID, ErrTrustAnchorNotFound)
}

// CreateTrustAnchor inserts ta and returns its new internal id.
func (s *GORMStore) CreateTrustAnchor(ctx context.Context, realm string, ta *TrustAnchor) (string, error) {
	return createWithID(s.db, ctx, realm, ta, func(t *TrustAnchor, id string, seq int64) {
		t.InternalID, t.Realm, t.Seq = id, realm, seq
	}, ErrDuplicateTrustAnchor)
}

// UpdateTrustAnchor replaces the mutable fields of the record.
func (s *GORMStore) UpdateTrustAnchor(ctx context.Context, realm, internalID string, ta *TrustAnchor) error {
	result := s.db.WithContext(ctx).Model(&TrustAnchor{}).
		Where("realm = ? AND internal_id = ?", realm, internalID).
		Select("trust_anchor", "entity_types", "client_registration_types_supported").
		Updates(&TrustAnchor{
			TrustAnchor:                      ta.TrustAnchor,
			EntityTypes:                      ta.EntityTypes,
			ClientRegistrationTypesSupported: ta.ClientRegistrationTypesSupported,
		})
	return rowsOrNotFound(result, ErrTrustAnchorNotFound, ErrDuplicateTrustAnchor)
}

func (s *GORMStore) DeleteTrustAnchor(ctx context.Context, realm, internalID string) error {
	return deleteWhere[TrustAnchor](s.db, ctx, realm, "internal_id", internalID, ErrTrustAnchorNotFound)
}

func rowsOrNotFound(result *gorm.DB, notFoundErr, dupErr error) error {
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return dupErr
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundErr
	}
	return nil
}
