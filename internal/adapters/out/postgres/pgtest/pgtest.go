// Package pgtest starts throwaway databases for repository and query tests.
package pgtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	"fooddelivery/internal/adapters/out/postgres/userrepo"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Tables in truncation order.
var Tables = []string{"order_items", "deliveries", "orders", "menu_items", "restaurants", "users"}

// StartPostgres runs a PostgreSQL container and returns a migrated connection.
// The caller terminates the container.
func StartPostgres(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := postgres_adapter.Open(postgres_adapter.DriverPostgres, dsn)
	if err != nil {
		return container, nil, err
	}

	if err = postgres_adapter.Migrate(db); err != nil {
		return container, nil, err
	}

	return container, db, nil
}

// Truncate empties every table of a PostgreSQL database.
func Truncate(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE " + strings.Join(Tables, ", ") + " CASCADE").Error
}

// OpenSQLite returns a migrated in-memory SQLite database private to t.
// A single connection is used so the in-memory database lives as long as the test.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := postgres_adapter.Open(postgres_adapter.DriverSQLite,
		fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres_adapter.Migrate(db))
	return db
}

func SeedUser(t testing.TB, db *gorm.DB, u *user.User) {
	t.Helper()
	dto := userrepo.FromDomain(u)
	require.NoError(t, db.Create(&dto).Error)
}

func SeedRestaurant(t testing.TB, db *gorm.DB, r *restaurant.Restaurant, items ...*restaurant.MenuItem) {
	t.Helper()
	dto := restaurantrepo.RestaurantFromDomain(r)
	require.NoError(t, db.Create(&dto).Error)

	for _, item := range items {
		itemDTO := restaurantrepo.MenuItemFromDomain(item)
		require.NoError(t, db.Create(&itemDTO).Error)
	}
}
