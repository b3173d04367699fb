package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/attendease/attendease-backend-go/internal/pkg/database"
	"github.com/attendease/attendease-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL, ensures the schema and
// empties both tables. Tests are skipped when no database is configured.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.EnsureSchema(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE attendances, employees")
	require.NoError(t, err)

	return db
}
