package store

import "context"

func (s *GORMStore) ListIdentityProviders(ctx context.Context, realm string) ([]*IdentityProvider, error) {
	return listRealm[IdentityProvider](s.db, ctx, realm)
}

func (s *GORMStore) GetIdentityProvider(ctx context.Context, realm, alias string) (*IdentityProvider, error) {
	return getWhere[IdentityProvider](s.db, ctx, realm, "alias", alias, ErrIdentityProviderNotFound)
}

func (s *GORMStore) CreateIdentityProvider(ctx context.Context, realm string, idp *IdentityProvider) (string, error) {
	return createWithID(s.db, ctx, realm, idp, func(p *IdentityProvider, id string, seq int64) {
		p.InternalID, p.Realm, p.Seq = id, realm, seq
	}, ErrDuplicateIdentityProvider)
}

// UpdateIdentityProvider replaces everything but the alias and ids.
func (s *GORMStore) UpdateIdentityProvider(ctx context.Context, realm, alias string, idp *IdentityProvider) error {
	result := s.db.WithContext(ctx).Model(&IdentityProvider{}).
		Where("realm = ? AND alias = ?", realm, alias).
		Select("display_name", "provider_id", "enabled", "config").
		Updates(&IdentityProvider{
			DisplayName: idp.DisplayName,
			ProviderID:  idp.ProviderID,
			Enabled:     idp.Enabled,
			Config:      idp.Config,
		})
	return rowsOrNotFound(result, ErrIdentityProviderNotFound, ErrDuplicateIdentityProvider)
}

func (s *GORMStore) DeleteIdentityProvider(ctx context.Context, realm, alias string) error {
	return deleteWhere[IdentityProvider](s.db, ctx, realm, "alias", alias, ErrIdentityProviderNotFound)
}
