package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/suPer8Hu/goldsmith-storefront/internal/catalogue"
	"github.com/suPer8Hu/goldsmith-storefront/internal/chat"
	"github.com/suPer8Hu/goldsmith-storefront/internal/inquiry"
	"github.com/suPer8Hu/goldsmith-storefront/internal/pricing"
	"github.com/suPer8Hu/goldsmith-storefront/internal/profile"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the gorm pool for driver "mysql" (default) or "sqlite" and pings it.
func Connect(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = gormsqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER=%q", driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger(log.New(os.Stdout, "\r\n", log.LstdFlags)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return gdb, nil
}

// gormLogger reports slow queries and real errors only. Not-found lookups are
// an expected outcome for every repo here.
func gormLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Models lists every persisted document type.
func Models() []any {
	return []any{
		&pricing.Quote{},
		&catalogue.Item{},
		&profile.Profile{},
		&profile.Article{},
		&inquiry.OrderIntent{},
		&inquiry.ContactInquiry{},
		&chat.Turn{},
	}
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
