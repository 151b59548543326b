package store

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureRealm creates realm with a minimal representation when missing.
func (s *GORMStore) EnsureRealm(ctx context.Context, name string) error {
	doc, err := json.Marshal(map[string]any{"id": name, "realm": name, "enabled": true})
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Realm{Name: name, Document: doc}).Error
}

// GetRealm returns the stored realm document.
func (s *GORMStore) GetRealm(ctx context.Context, name string) (map[string]json.RawMessage, error) {
	var r Realm
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&r).Error; err != nil {
		return nil, convertNotFoundError(err, ErrRealmNotFound)
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(r.Document, &doc); err != nil {
		return nil, fmt.Errorf("corrupt realm %s: %w", name, err)
	}
	return doc, nil
}

// UpdateRealm merges the top-level fields of patch into the stored document.
// Fields absent from patch keep their value; the realm name cannot change.
func (s *GORMStore) UpdateRealm(ctx context.Context, name string, patch map[string]json.RawMessage) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r Realm
		if err := tx.Where("name = ?", name).First(&r).Error; err != nil {
			return convertNotFoundError(err, ErrRealmNotFound)
		}
		doc := map[string]json.RawMessage{}
		if err := json.Unmarshal(r.Document, &doc); err != nil {
			return fmt.Errorf("corrupt realm %s: %w", name, err)
		}
		for k, v := range patch {
			doc[k] = v
		}
		doc["realm"] = jsonString(name)

		raw, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		return tx.Model(&r).Update("document", raw).Error
	})
}

// RealmNames returns every realm name.
func (s *GORMStore) RealmNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&Realm{}).Order("name").Pluck("name", &names).Error
	return names, err
}

// RealmExists reports whether name is a realm.
func (s *GORMStore) RealmExists(ctx context.Context, name string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Realm{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// RealmInt reads an integer field of the realm document.
func (s *GORMStore) RealmInt(ctx context.Context, name, field string) (int, bool, error) {
	doc, err := s.GetRealm(ctx, name)
	if err != nil {
		return 0, false, err
	}
	raw, ok := doc[field]
	if !ok {
		return 0, false, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func jsonString(s string) json.RawMessage {
	raw, _ := json.Marshal(s)
	return raw
}
