// Package db provides the database driver configured by the profile.
package db

import (
	"github.com/pkg/errors"

	"github.com/hrygo/standnotes/internal/profile"
	"github.com/hrygo/standnotes/store"
	"github.com/hrygo/standnotes/store/db/postgres"
	"github.com/hrygo/standnotes/store/db/sqlite"
)

// NewDBDriver creates a new database driver based on the profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	switch profile.Driver {
	case "postgres":
		return postgres.NewDB(profile)
	case "sqlite":
		return sqlite.NewDB(profile)
	default:
		return nil, errors.Errorf("unsupported database driver: %s", profile.Driver)
	}
}
