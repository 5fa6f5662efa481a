package persistence

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/infrastructure/migration"
	"github.com/dressshop/backend/internal/infrastructure/persistence/models"
	"github.com/dressshop/backend/migrations"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgres starts a disposable PostgreSQL container and applies the embedded migrations
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("dressshop_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	m, err := migration.New(migrationDB, migrations.FS, nil)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestPostgres_ConcurrentVerificationRecordsOnePayment(t *testing.T) {
	db := setupPostgres(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, identity.RoleCustomer)
	item := seedItem(t, db, "anarkali", 1299)
	o := newTestOrder(t, user.ID, "order_pg_race", item)
	require.NoError(t, repo.Create(ctx, o))

	const attempts = 16
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int
		start = make(chan struct{})
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			loaded, err := repo.FindByGatewayOrderID(ctx, "order_pg_race")
			if !assert.NoError(t, err) {
				return
			}
			if _, err := loaded.MarkPaid(time.Now().UTC()); !assert.NoError(t, err) {
				return
			}
			p, err := order.NewPayment(loaded, "pay_pg_race", "sig", time.Now().UTC())
			if !assert.NoError(t, err) {
				return
			}
			applied, err := repo.RecordPayment(ctx, loaded, p)
			assert.NoError(t, err)
			if applied {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins)

	var payments int64
	require.NoError(t, db.Model(&models.PaymentModel{}).Where("order_id = ?", o.ID).Count(&payments).Error)
	assert.Equal(t, int64(1), payments)

	stored, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, stored.Status)
	assert.NotNil(t, stored.CompletedAt)
}

func TestPostgres_DeliveryLifecycle(t *testing.T) {
	db := setupPostgres(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, identity.RoleCustomer)
	item := seedItem(t, db, "lehenga", 4999)
	o := newTestOrder(t, user.ID, "order_pg_deliver", item)
	require.NoError(t, repo.Create(ctx, o))

	_, err := o.MarkPaid(time.Now().UTC())
	require.NoError(t, err)
	p, err := order.NewPayment(o, "pay_pg_deliver", "sig", time.Now().UTC())
	require.NoError(t, err)
	applied, err := repo.RecordPayment(ctx, o, p)
	require.NoError(t, err)
	require.True(t, applied)

	_, err = o.MarkDelivered(time.Now().UTC())
	require.NoError(t, err)
	applied, err = repo.SaveDelivered(ctx, o)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.SaveDelivered(ctx, o)
	require.NoError(t, err)
	assert.False(t, applied, "second delivery must not change the row")

	paid, total, err := repo.FindPaid(ctx, shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, paid, 1)
	assert.True(t, paid[0].IsDelivered())
}
