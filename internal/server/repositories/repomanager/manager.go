package repomanager

import (
	"context"
	"database/sql"

	"github.com/lotfi029/FreelancerAssignment/internal/dbx"
	"github.com/lotfi029/FreelancerAssignment/internal/server/repositories/products"
	"github.com/lotfi029/FreelancerAssignment/internal/server/repositories/refreshtokens"
	"github.com/lotfi029/FreelancerAssignment/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a *sql.DB or a transaction,
// and exposes the schema migration hook run at startup.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Products(db dbx.DBTX) products.Repository
}
