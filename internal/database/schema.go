package database

var tableStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		document TEXT,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS equipments (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		rental_mode TEXT NOT NULL DEFAULT 'daily',
		daily_rate NUMERIC NOT NULL,
		equipment_value NUMERIC NOT NULL DEFAULT 0,
		stock INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rentals (
		id BIGSERIAL PRIMARY KEY,
		client_id BIGINT NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		start_date TEXT NOT NULL,
		start_time TEXT NOT NULL DEFAULT '08:00',
		end_date TEXT NOT NULL,
		end_time TEXT NOT NULL DEFAULT '18:00',
		delivery_mode TEXT NOT NULL DEFAULT 'pickup',
		delivery_address TEXT,
		freight_value NUMERIC NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'BRL',
		subtotal NUMERIC NOT NULL,
		total NUMERIC NOT NULL,
		status TEXT NOT NULL DEFAULT 'in_progress',
		quote_valid_until TEXT,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rental_items (
		id BIGSERIAL PRIMARY KEY,
		rental_id BIGINT NOT NULL REFERENCES rentals(id) ON DELETE CASCADE,
		equipment_id BIGINT NOT NULL REFERENCES equipments(id) ON DELETE RESTRICT,
		equipment_name TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL,
		unit_price NUMERIC NOT NULL,
		line_total NUMERIC NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS app_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

// Additive migrations for stores created by older versions. On a current
// store each of these fails with duplicate_column, which is ignored.
var columnStatements = []string{
	`ALTER TABLE equipments ADD COLUMN rental_mode TEXT NOT NULL DEFAULT 'daily'`,
	`ALTER TABLE equipments ADD COLUMN equipment_value NUMERIC NOT NULL DEFAULT 0`,
	`ALTER TABLE rentals ADD COLUMN start_time TEXT NOT NULL DEFAULT '08:00'`,
	`ALTER TABLE rentals ADD COLUMN end_time TEXT NOT NULL DEFAULT '18:00'`,
	`ALTER TABLE rentals ADD COLUMN delivery_mode TEXT NOT NULL DEFAULT 'pickup'`,
	`ALTER TABLE rentals ADD COLUMN delivery_address TEXT`,
	`ALTER TABLE rentals ADD COLUMN freight_value NUMERIC NOT NULL DEFAULT 0`,
	`ALTER TABLE rentals ADD COLUMN currency TEXT NOT NULL DEFAULT 'BRL'`,
	`ALTER TABLE rentals ADD COLUMN quote_valid_until TEXT`,
	`ALTER TABLE rental_items ADD COLUMN equipment_name TEXT NOT NULL DEFAULT ''`,
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_rentals_client_id ON rentals(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rental_items_rental_id ON rental_items(rental_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rental_items_equipment_id ON rental_items(equipment_id)`,
}

const seedSettingQuery = `INSERT INTO app_settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`

const dropTablesQuery = `DROP TABLE IF EXISTS rental_items, rentals, equipments, clients, app_settings CASCADE`

func schemaStatements() []string {
	statements := make([]string, 0, len(tableStatements)+len(columnStatements)+len(indexStatements))
	statements = append(statements, tableStatements...)
	statements = append(statements, columnStatements...)
	return append(statements, indexStatements...)
}
