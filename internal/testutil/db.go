// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"sync"
	"testing"
	"time"

	"cinelist/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Clock is a deterministic time source that advances by Step on every read,
// so successive writes always get strictly increasing timestamps.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewClock starts a clock at a fixed UTC instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), Step: time.Second}
}

// Now returns the current instant and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.Step)
	return c.now
}

// NewSQLiteDB returns a migrated in-memory database whose gorm clock is clock
// (time.Now when nil).
func NewSQLiteDB(t *testing.T, clock *Clock) *gorm.DB {
	t.Helper()

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if clock != nil {
		cfg.NowFunc = clock.Now
	}

	db, err := database.OpenSQLite(":memory:", cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
