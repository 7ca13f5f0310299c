package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	intconfig "boardinghouse-backend/internal/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		full_name VARCHAR(255) NOT NULL DEFAULT '',
		username VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		avatar_url VARCHAR(500) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_profiles_email (email),
		UNIQUE KEY uq_profiles_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		room_number VARCHAR(50) NOT NULL,
		capacity VARCHAR(50) NOT NULL DEFAULT '',
		rental_term VARCHAR(50) NOT NULL DEFAULT 'monthly',
		price_monthly DECIMAL(12,2) NOT NULL DEFAULT 0,
		description TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'Available',
		image_urls JSON,
		created_by BIGINT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_rooms_number (room_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS booking_requests (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		room_id BIGINT NOT NULL,
		requestor BIGINT NOT NULL,
		contact_phone VARCHAR(50) NOT NULL DEFAULT '',
		check_in DATE NULL,
		check_out DATE NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Pending',
		message TEXT,
		decided_by BIGINT NULL,
		decided_at TIMESTAMP NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_booking_requestor (requestor),
		KEY idx_booking_status (status),
		CONSTRAINT fk_booking_room FOREIGN KEY (room_id) REFERENCES rooms(id),
		CONSTRAINT fk_booking_requestor FOREIGN KEY (requestor) REFERENCES profiles(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	// room_active_key collapses to NULL for inactive rows, so the unique key
	// only constrains Active tenancies: at most one per room.
	`CREATE TABLE IF NOT EXISTS tenants (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		room_id BIGINT NOT NULL,
		profile_id BIGINT NOT NULL,
		tenant_name VARCHAR(255) NOT NULL DEFAULT '',
		rent_start DATE NULL,
		rent_due DATE NULL,
		move_in_date DATE NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Active',
		room_active_key BIGINT GENERATED ALWAYS AS (CASE WHEN status = 'Active' THEN room_id END) STORED,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_tenants_profile (profile_id),
		UNIQUE KEY uq_tenants_room_active (room_active_key),
		CONSTRAINT fk_tenant_room FOREIGN KEY (room_id) REFERENCES rooms(id),
		CONSTRAINT fk_tenant_profile FOREIGN KEY (profile_id) REFERENCES profiles(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	// The unique key on stripe_payment_intent_id backs the conditional
	// insert used during payment reconciliation.
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		tenant_id BIGINT NULL,
		room_id BIGINT NOT NULL,
		recorded_by BIGINT NULL,
		payment_date DATE NULL,
		amount DECIMAL(12,2) NOT NULL DEFAULT 0,
		payment_status VARCHAR(20) NOT NULL DEFAULT 'Paid',
		reference_no VARCHAR(100) NOT NULL DEFAULT '',
		stripe_payment_intent_id VARCHAR(255) NULL,
		payment_method VARCHAR(50) NOT NULL DEFAULT 'stripe',
		currency VARCHAR(10) NOT NULL DEFAULT 'PHP',
		paid_at TIMESTAMP NULL,
		notes TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_payments_intent (stripe_payment_intent_id),
		KEY idx_payments_tenant (tenant_id),
		CONSTRAINT fk_payment_room FOREIGN KEY (room_id) REFERENCES rooms(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payment_transactions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT NULL,
		transaction_id VARCHAR(100) NOT NULL,
		payment_method VARCHAR(50) NOT NULL DEFAULT 'stripe',
		amount DECIMAL(12,2) NOT NULL DEFAULT 0,
		currency VARCHAR(10) NOT NULL DEFAULT 'PHP',
		status VARCHAR(20) NOT NULL DEFAULT 'succeeded',
		stripe_payment_intent_id VARCHAR(255) NOT NULL DEFAULT '',
		stripe_charge_id VARCHAR(255) NOT NULL DEFAULT '',
		gateway_response JSON,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_txn_intent (stripe_payment_intent_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		from_user VARCHAR(255) NOT NULL DEFAULT 'System',
		message TEXT NOT NULL,
		type VARCHAR(30) NOT NULL DEFAULT 'payment',
		is_read TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_notifications_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var tables = []string{
	"profiles", "rooms", "booking_requests", "tenants",
	"payments", "payment_transactions", "notifications",
}

func open() (*sql.DB, error) {
	env := intconfig.LoadEnv()
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4",
		env.DBUser, env.DBPass, env.DBHost, env.DBName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	db, err := open()
	if err != nil {
		return err
	}
	defer db.Close()

	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("statement %d failed: %w", i+1, err)
		}
	}
	log.Printf("migrate: applied %d statements", len(schema))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	db, err := open()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, t := range tables {
		var n int64
		err := db.QueryRow("SELECT COUNT(*) FROM " + t).Scan(&n)
		if err != nil {
			fmt.Printf("%-22s missing (%v)\n", t, err)
			continue
		}
		fmt.Printf("%-22s %d rows\n", t, n)
	}
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	db, err := open()
	if err != nil {
		return err
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	res, err := db.Exec(`INSERT INTO profiles (full_name, username, email, password_hash, role, status)
		VALUES ('Administrator', 'admin', 'admin@example.com', ?, 'admin', 'active')
		ON DUPLICATE KEY UPDATE id = id`, string(hash))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 1 {
		log.Println("seed: created admin account (admin / changeme123)")
	} else {
		log.Println("seed: admin account already present")
	}

	_, err = db.Exec(`INSERT INTO rooms (room_number, capacity, rental_term, price_monthly, description, status)
		VALUES ('101', 2, 'monthly', 5000.00, 'Ground floor room with shared bath', 'Available')
		ON DUPLICATE KEY UPDATE id = id`)
	return err
}

func main() {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the boarding house database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		&cobra.Command{Use: "up", Short: "Create all tables", RunE: runUp},
		&cobra.Command{Use: "status", Short: "Show per-table row counts", RunE: runStatus},
		&cobra.Command{Use: "seed", Short: "Insert a default admin account and sample room", RunE: runSeed},
	)

	if err := godotenv.Load(); err != nil {
		log.Println("migrate: no .env file found, using environment")
	}

	if err := root.Execute(); err != nil {
		log.Println("migrate:", err)
		os.Exit(1)
	}
}
