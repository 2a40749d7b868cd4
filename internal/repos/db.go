package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo users and listings if the DB is empty (idempotent).
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	if err := seedProducts(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  is_admin INTEGER NOT NULL DEFAULT 0,
  banned_until TEXT,
  banned_forever INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Products (garment listings)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  size TEXT NOT NULL DEFAULT '',
  color TEXT NOT NULL DEFAULT '',
  gender TEXT NOT NULL DEFAULT '',
  condition TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  price NUMERIC CHECK (price IS NULL OR price >= 0),
  duration_days INTEGER NOT NULL CHECK (duration_days > 0),
  available INTEGER NOT NULL DEFAULT 1,
  removed INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_owner ON products(owner_id);
CREATE INDEX IF NOT EXISTS idx_products_name  ON products(LOWER(name));

-- Cart lines (one per user/product pair)
CREATE TABLE IF NOT EXISTS cart_items(
  user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  PRIMARY KEY (user_id, product_id)
);

-- Rental orders (one per checked-out cart line)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  product_id TEXT NOT NULL REFERENCES products(id),
  owner_id TEXT NOT NULL REFERENCES users(id),
  duration_days INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','SHIPPED','RETURNED')),
  placed_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_user    ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_owner   ON orders(owner_id);
CREATE INDEX IF NOT EXISTS idx_orders_product ON orders(product_id);

-- Closet swap proposals
CREATE TABLE IF NOT EXISTS swap_requests(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id),
  requested_by_id TEXT NOT NULL REFERENCES users(id),
  offered_product_id TEXT NOT NULL REFERENCES products(id),
  requested_product_id TEXT NOT NULL REFERENCES products(id),
  request_status TEXT NOT NULL DEFAULT 'PENDING' CHECK (request_status IN ('PENDING','ACCEPTED','DECLINED')),
  swap_status TEXT NOT NULL DEFAULT 'PENDING' CHECK (swap_status IN ('PENDING','SHIPPED','RETURNED')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_swaps_owner     ON swap_requests(owner_id);
CREATE INDEX IF NOT EXISTS idx_swaps_requester ON swap_requests(requested_by_id);
CREATE INDEX IF NOT EXISTS idx_swaps_offered   ON swap_requests(offered_product_id);

-- Wishlists (swap candidate lists)
CREATE TABLE IF NOT EXISTS wishlist_items(
  user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, product_id)
);

-- Reviews (append-only feedback, decoupled from order state)
CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id),
  user_id TEXT NOT NULL REFERENCES users(id),
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);

-- Payment records (gateway is a black box; completion only)
CREATE TABLE IF NOT EXISTS payments(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id),
  user_id TEXT NOT NULL REFERENCES users(id),
  amount NUMERIC NOT NULL CHECK (amount >= 0),
  method TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'RECORDED',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures two regular users and one admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Name, Email, Hash string
		Admin                 bool
	}
	mk := func(id, name, email, raw string, admin bool) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Name: name, Email: email, Hash: string(h), Admin: admin}
	}

	users := []u{
		mk("u-mira", "Mira", "mira@closetloop.test", "Passw0rd!", false),
		mk("u-dev", "Dev", "dev@closetloop.test", "Passw0rd!", false),
		mk("u-admin", "Admin", "admin@closetloop.test", "Passw0rd!", true),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,name,email,password_hash,is_admin)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Name, x.Email, x.Hash, x.Admin); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// seedProducts inserts demo listings if none exist yet.
func seedProducts(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo listings")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,owner_id,name,size,color,gender,condition,image,price,duration_days) VALUES
	  ('p-lehenga','u-mira','Elegant Lehenga','M','Red','Female','New','products/p-lehenga/main.jpg',12999,7),
	  ('p-saree','u-mira','Designer Saree','L','Pink','Female','Like New','products/p-saree/main.jpg',8999,7),
	  ('p-suit','u-dev','Business Suit','M','Navy Blue','Male','New','products/p-suit/main.jpg',5999,30),
	  ('p-denim','u-dev','Casual Denim Set','S','Blue','Unisex','Good','products/p-denim/main.jpg',2999,15)`)
	return tx.Commit()
}
