package repos

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: sqlite serializes writes anyway, and PRAGMA
	// foreign_keys is per-connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  wax_type TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  width REAL NOT NULL DEFAULT 0,
  height REAL NOT NULL DEFAULT 0,
  depth REAL NOT NULL DEFAULT 0,
  weight REAL NOT NULL DEFAULT 0,
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

-- Color variants
CREATE TABLE IF NOT EXISTS colors(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  hex TEXT NOT NULL CHECK (length(hex) = 7),
  is_default INTEGER NOT NULL DEFAULT 0,
  price_modifier NUMERIC NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_colors_product ON colors(product_id);

-- Product images (files live under the upload dir)
CREATE TABLE IF NOT EXISTS product_images(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  filename TEXT NOT NULL,
  preview_filename TEXT NOT NULL,
  alt_text TEXT NOT NULL DEFAULT '',
  sort_order INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id);

-- Compositions (promotional showcases)
CREATE TABLE IF NOT EXISTS compositions(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Orders. order_items.product_id carries no FK on purpose: products stay
-- deletable after being ordered, the item keeps its frozen price.
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  contact_method TEXT NOT NULL DEFAULT 'phone',
  address TEXT NOT NULL DEFAULT '',
  comment TEXT NOT NULL DEFAULT '',
  total NUMERIC NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'new',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  color_id TEXT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

-- Admin users & sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Visitor carts. cart_items.product_id has no FK: deleting a product leaves
-- dangling lines that checkout silently drops.
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  color_id TEXT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price NUMERIC NOT NULL,
  position INTEGER NOT NULL,
  created_at TEXT,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id, position);
`
	_, err := db.Exec(schema)
	return err
}

// SeedAdmin ensures the back-office user exists (idempotent; safe to run
// every start). Provisioning is env-driven, there is no signup flow.
func SeedAdmin(db *sqlx.DB, email, password string) error {
	if email == "" || password == "" {
		log.Println("[seed] ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,email,password_hash,active)
		VALUES(?,?,?,1)
		ON CONFLICT(email) DO NOTHING
	`, uuid.NewString(), email, string(hash))
	return err
}
