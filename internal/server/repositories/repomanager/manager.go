// Package repomanager vends repository implementations bound to a database
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/gamecatalog/authservice/internal/dbx"
	"github.com/gamecatalog/authservice/internal/server/repositories/refreshtokens"
	"github.com/gamecatalog/authservice/internal/server/repositories/users"
)

// RepositoryManager constructs repositories over any DBTX, which lets
// services run several repository calls inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
