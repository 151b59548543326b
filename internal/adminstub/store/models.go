package store

import (
	"errors"
	"time"
)

var (
	ErrRealmNotFound             = errors.New("realm not found")
	ErrTrustAnchorNotFound       = errors.New("trust anchor not found")
	ErrDuplicateTrustAnchor      = errors.New("trust anchor already exists")
	ErrIdentityProviderNotFound  = errors.New("identity provider not found")
	ErrDuplicateIdentityProvider = errors.New("identity provider already exists")
)

// Realm stores the realm representation as a JSON document so arbitrary
// fields written by clients survive unchanged.
type Realm struct {
	Name      string    `gorm:"primaryKey;size:255"`
	Document  []byte    `gorm:"type:blob"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Realm) TableName() string { return "realms" }

// TrustAnchor is one OpenID Federation trust anchor of a realm.
type TrustAnchor struct {
	InternalID                       string   `gorm:"primaryKey;size:36"`
	Realm                            string   `gorm:"size:255;uniqueIndex:idx_realm_trust_anchor;not null"`
	TrustAnchor                      string   `gorm:"size:2048;uniqueIndex:idx_realm_trust_anchor;not null"`
	EntityTypes                      []string `gorm:"serializer:json"`
	ClientRegistrationTypesSupported []string `gorm:"serializer:json"`

	// Seq orders trust anchors by creation.
	Seq       int64     `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (TrustAnchor) TableName() string { return "trust_anchors" }

// IdentityProvider is an identity provider instance of a realm.
type IdentityProvider struct {
	InternalID  string            `gorm:"primaryKey;size:36"`
	Realm       string            `gorm:"size:255;uniqueIndex:idx_realm_alias;not null"`
	Alias       string            `gorm:"size:255;uniqueIndex:idx_realm_alias;not null"`
	DisplayName string            `gorm:"size:255"`
	ProviderID  string            `gorm:"size:255;not null"`
	Enabled     bool              `gorm:"not null"`
	Config      map[string]string `gorm:"serializer:json"`
	Seq         int64             `gorm:"index"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`
}

func (IdentityProvider) TableName() string { return "identity_providers" }

// AllModels lists the models migrated on startup.
func AllModels() []any {
	return []any{&Realm{}, &TrustAnchor{}, &IdentityProvider{}}
}
