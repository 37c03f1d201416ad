package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("moneytracker_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgresGateway_SaveAndLoadRoundTrip(t *testing.T) {
	db := startPostgres(t)
	gateway, err := NewPostgresGateway(db)
	assert.NoError(t, err)

	ctx := context.Background()
	userID := "integration-user"

	funds := []domain.Fund{{ID: "f1", UserID: userID, Name: "Wallet", Balance: 42.5}}
	raw, err := json.Marshal(funds)
	assert.NoError(t, err)
	assert.NoError(t, gateway.SaveCollection(ctx, userID, domain.CollectionFunds, raw))

	fd := domain.FinancialData{UserID: userID, SavingBalance: 300}
	raw, err = json.Marshal(fd)
	assert.NoError(t, err)
	assert.NoError(t, gateway.SaveCollection(ctx, userID, domain.CollectionFinancialData, raw))

	blobs, err := gateway.LoadAll(ctx, userID)
	assert.NoError(t, err)
	assert.Len(t, blobs, 2)

	var loadedFunds []domain.Fund
	assert.NoError(t, json.Unmarshal(blobs[domain.CollectionFunds], &loadedFunds))
	assert.Len(t, loadedFunds, 1)
	assert.Equal(t, 42.5, loadedFunds[0].Balance)

	// Other users see nothing.
	other, err := gateway.LoadAll(ctx, "someone-else")
	assert.NoError(t, err)
	assert.Empty(t, other)
}

func TestPostgresGateway_SaveOverwrites(t *testing.T) {
	db := startPostgres(t)
	gateway, err := NewPostgresGateway(db)
	assert.NoError(t, err)

	ctx := context.Background()
	userID := "integration-user"

	for _, balance := range []float64{100, 250} {
		raw, merr := json.Marshal(domain.FinancialData{UserID: userID, SavingBalance: balance})
		assert.NoError(t, merr)
		assert.NoError(t, gateway.SaveCollection(ctx, userID, domain.CollectionFinancialData, raw))
	}

	blobs, err := gateway.LoadAll(ctx, userID)
	assert.NoError(t, err)

	var fd domain.FinancialData
	assert.NoError(t, json.Unmarshal(blobs[domain.CollectionFinancialData], &fd))
	assert.Equal(t, 250.0, fd.SavingBalance)
}
