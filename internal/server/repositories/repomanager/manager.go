// Package repomanager vends repository implementations bound to a DBTX,
// so services can run the same repository code against *sql.DB or an
// open transaction, and exposes the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/yunusemrekaplan/SmartFA-Dev/internal/dbx"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/repositories/refreshtokens"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
