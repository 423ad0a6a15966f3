package realm

import "gorm.io/gorm"

// ForRealm returns a GORM scope that filters by realm_id.
func ForRealm(realmID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("realm_id = ?", realmID)
	}
}
