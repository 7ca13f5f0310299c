package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

var (
	DB   *sql.DB
	dbMu sync.Mutex

	lastEnv Env
)

// ConnectDB initializes the shared DB connection (idempotent). A missing or
// unreachable database is logged as a warning instead of aborting startup, so
// the server can still answer health checks and report the problem.
func ConnectDB(env Env) *sql.DB {
	dbMu.Lock()
	defer dbMu.Unlock()

	lastEnv = env

	if DB != nil {
		return DB
	}
	return connectLocked()
}

func connectLocked() *sql.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		lastEnv.DBUser,
		lastEnv.DBPass,
		lastEnv.DBHost,
		lastEnv.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("warning: cannot open DB handle: %v", err)
		return nil
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Printf("warning: database unreachable (%s/%s): %v", lastEnv.DBHost, lastEnv.DBName, err)
		_ = db.Close()
		return nil
	}

	DB = db
	log.Println("Connected to MySQL database")
	return DB
}

// EnsureDB pings the shared connection and reconnects when needed.
func EnsureDB() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB == nil {
		if connectLocked() == nil {
			return fmt.Errorf("database not connected")
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := DB.PingContext(ctx); err != nil {
		return err
	}
	return nil
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
