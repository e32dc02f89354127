package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		phone TEXT,
		role TEXT NOT NULL,
		approval_status TEXT NOT NULL,
		active_mode TEXT,
		location_lat REAL,
		location_lon REAL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createDemandTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE demands (
		id TEXT PRIMARY KEY,
		farmer_id TEXT NOT NULL,
		farmer_name TEXT NOT NULL,
		title TEXT,
		required_service TEXT NOT NULL,
		service_type TEXT,
		crop_type TEXT,
		area REAL,
		city TEXT NOT NULL,
		address TEXT,
		description TEXT,
		status TEXT NOT NULL,
		photo_url TEXT,
		job_location_lat REAL,
		job_location_lon REAL,
		required_start DATETIME NOT NULL,
		required_end DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createOfferTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE offers (
		id TEXT PRIMARY KEY,
		provider_id TEXT NOT NULL,
		provider_name TEXT NOT NULL,
		equipment_type TEXT NOT NULL,
		machine_template_id TEXT,
		description TEXT,
		custom_fields TEXT,
		price_rate REAL NOT NULL,
		city TEXT NOT NULL,
		address TEXT,
		booking_status TEXT NOT NULL,
		photo_url TEXT NOT NULL,
		service_area_lat REAL,
		service_area_lon REAL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE availability_slots (
		id TEXT PRIMARY KEY,
		offer_id TEXT NOT NULL,
		"start" DATETIME NOT NULL,
		"end" DATETIME NOT NULL
	);`)
}

func createProposalTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE proposals (
		id TEXT PRIMARY KEY,
		demand_id TEXT NOT NULL,
		provider_id TEXT NOT NULL,
		provider_name TEXT NOT NULL,
		price REAL NOT NULL,
		description TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE(demand_id, provider_id)
	);`)
}

func createReservationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE reservations (
		id TEXT PRIMARY KEY,
		farmer_id TEXT NOT NULL,
		farmer_name TEXT NOT NULL,
		farmer_phone TEXT,
		offer_id TEXT NOT NULL,
		provider_id TEXT NOT NULL,
		provider_name TEXT NOT NULL,
		equipment_type TEXT NOT NULL,
		price_rate REAL NOT NULL,
		total_cost REAL,
		status TEXT NOT NULL,
		provider_validated BOOLEAN NOT NULL DEFAULT FALSE,
		farmer_validated BOOLEAN NOT NULL DEFAULT FALSE,
		provider_validated_at DATETIME,
		farmer_validated_at DATETIME,
		approved_at DATETIME,
		reserved_start DATETIME NOT NULL,
		reserved_end DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createMessageTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE messages (
		id TEXT PRIMARY KEY,
		sender_id TEXT,
		sender_name TEXT NOT NULL,
		receiver_id TEXT NOT NULL,
		receiver_name TEXT NOT NULL,
		content TEXT NOT NULL,
		read BOOLEAN NOT NULL DEFAULT FALSE,
		related_offer_id TEXT,
		related_demand_id TEXT,
		attachment_url TEXT,
		attachment_name TEXT,
		attachment_kind TEXT,
		action_label TEXT,
		action_target TEXT,
		created_at DATETIME
	);`)
}

func createMachineTemplateTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE machine_templates (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		description TEXT,
		field_definitions TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createVIPRequestTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE vip_upgrade_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		user_email TEXT NOT NULL,
		current_role TEXT NOT NULL,
		status TEXT NOT NULL,
		request_date DATETIME NOT NULL,
		resolved_at DATETIME
	);`)
}
