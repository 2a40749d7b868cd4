package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"closetloop/internal/domain"
	"closetloop/internal/repos"
	"closetloop/internal/services"
)

func memdbAll(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE users(id TEXT PRIMARY KEY, name TEXT, email TEXT UNIQUE, phone TEXT DEFAULT '',
	  password_hash TEXT DEFAULT '', is_admin INTEGER DEFAULT 0,
	  banned_until TEXT, banned_forever INTEGER DEFAULT 0, created_at TEXT);
	CREATE TABLE products(id TEXT PRIMARY KEY, owner_id TEXT, name TEXT, size TEXT DEFAULT '',
	  color TEXT DEFAULT '', gender TEXT DEFAULT '', condition TEXT DEFAULT '', image TEXT DEFAULT '',
	  price NUMERIC, duration_days INTEGER, available INTEGER DEFAULT 1, removed INTEGER DEFAULT 0,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE cart_items(user_id TEXT, product_id TEXT, qty INTEGER,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT, PRIMARY KEY(user_id, product_id));
	CREATE TABLE orders(id TEXT PRIMARY KEY, user_id TEXT, product_id TEXT, owner_id TEXT,
	  duration_days INTEGER, status TEXT DEFAULT 'PENDING', placed_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE swap_requests(id TEXT PRIMARY KEY, owner_id TEXT, requested_by_id TEXT,
	  offered_product_id TEXT, requested_product_id TEXT,
	  request_status TEXT DEFAULT 'PENDING', swap_status TEXT DEFAULT 'PENDING',
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE wishlist_items(user_id TEXT, product_id TEXT, created_at TEXT,
	  PRIMARY KEY(user_id, product_id));
	CREATE TABLE reviews(id TEXT PRIMARY KEY, product_id TEXT, user_id TEXT, rating INTEGER,
	  comment TEXT DEFAULT '', created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE payments(id TEXT PRIMARY KEY, order_id TEXT, user_id TEXT, amount NUMERIC,
	  method TEXT, status TEXT, created_at TEXT DEFAULT CURRENT_TIMESTAMP);

	INSERT INTO users(id,name,email) VALUES
	  ('u-owner','Owner','owner@t.test'),
	  ('u-renter','Renter','renter@t.test'),
	  ('u-other','Other','other@t.test');
	INSERT INTO users(id,name,email,is_admin) VALUES ('u-admin','Admin','admin@t.test',1);
	INSERT INTO users(id,name,email,banned_forever) VALUES ('u-banned','Banned','banned@t.test',1);

	INSERT INTO products(id,owner_id,name,price,duration_days) VALUES
	  ('p-saree','u-owner','Designer Saree',8999,7),
	  ('p-suit','u-owner','Business Suit',5999,30),
	  ('p-denim','u-other','Casual Denim Set',2999,15);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func user(t *testing.T, db *sqlx.DB, id string) *domain.User {
	t.Helper()
	u, err := repos.NewUserRepo(db).ByID(id)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestOrderFlow_PlaceAdvanceReturn(t *testing.T) {
	db := memdbAll(t)
	prodRepo := repos.NewProductRepo(db)
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db), prodRepo, repos.NewCartRepo(db))

	renter := user(t, db, "u-renter")
	owner := user(t, db, "u-owner")

	o, err := orderSvc.Place(renter, "p-saree")
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.OrderPending || o.OwnerID != "u-owner" || o.DurationDays != 7 {
		t.Fatalf("bad order: %+v", o)
	}

	// Availability is claimed by the pending order.
	p, err := prodRepo.Get("p-saree")
	if err != nil {
		t.Fatal(err)
	}
	if p.Available {
		t.Fatal("product should be unavailable while order is active")
	}

	// Second renter cannot double-book.
	if _, err := orderSvc.Place(user(t, db, "u-other"), "p-saree"); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}

	// Renter cannot advance; only the owner (or admin) can.
	if _, err := orderSvc.AdvanceStatus(o.ID, domain.OrderShipped, renter); !errors.Is(err, domain.ErrAuthorization) {
		t.Fatalf("want ErrAuthorization, got %v", err)
	}

	// No skipping PENDING -> RETURNED.
	if _, err := orderSvc.AdvanceStatus(o.ID, domain.OrderReturned, owner); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}

	o, err = orderSvc.AdvanceStatus(o.ID, domain.OrderShipped, owner)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.OrderShipped {
		t.Fatalf("want SHIPPED, got %s", o.Status)
	}

	// No going backward.
	if _, err := orderSvc.AdvanceStatus(o.ID, domain.OrderShipped, owner); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}

	o, err = orderSvc.AdvanceStatus(o.ID, domain.OrderReturned, owner)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.OrderReturned {
		t.Fatalf("want RETURNED, got %s", o.Status)
	}

	// Returning releases the product for the next rental.
	p, _ = prodRepo.Get("p-saree")
	if !p.Available {
		t.Fatal("product should be available again after return")
	}

	// Terminal state: nothing advances past RETURNED.
	if _, err := orderSvc.AdvanceStatus(o.ID, domain.OrderReturned, owner); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestToggleAvailability_BlockedByOpenRental(t *testing.T) {
	db := memdbAll(t)
	prodRepo := repos.NewProductRepo(db)
	prodSvc := services.NewProductService(prodRepo, repos.NewOrderRepo(db), repos.NewSwapRepo(db))
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db), prodRepo, repos.NewCartRepo(db))

	if _, err := orderSvc.Place(user(t, db, "u-renter"), "p-saree"); err != nil {
		t.Fatal(err)
	}
	// The owner cannot re-list while the rental is out; the return flow
	// releases the item.
	if _, err := prodSvc.ToggleAvailability("p-saree", "u-owner"); !errors.Is(err, domain.ErrPrecondition) {
		t.Fatalf("want ErrPrecondition, got %v", err)
	}
}

func TestOrderFlow_SelfRental(t *testing.T) {
	db := memdbAll(t)
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db), repos.NewProductRepo(db), repos.NewCartRepo(db))

	if _, err := orderSvc.Place(user(t, db, "u-owner"), "p-saree"); !errors.Is(err, domain.ErrSelfRental) {
		t.Fatalf("want ErrSelfRental, got %v", err)
	}
}

func TestOrderFlow_AdminCanAdvance(t *testing.T) {
	db := memdbAll(t)
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db), repos.NewProductRepo(db), repos.NewCartRepo(db))

	o, err := orderSvc.Place(user(t, db, "u-renter"), "p-saree")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := orderSvc.AdvanceStatus(o.ID, domain.OrderShipped, user(t, db, "u-admin")); err != nil {
		t.Fatalf("admin should advance: %v", err)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	db := memdbAll(t)
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db), repos.NewProductRepo(db), repos.NewCartRepo(db))

	if _, err := orderSvc.Checkout(user(t, db, "u-renter")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestCheckout_PartialSuccess(t *testing.T) {
	db := memdbAll(t)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db), prodRepo, cartRepo)

	renter := user(t, db, "u-renter")
	for _, pid := range []string{"p-saree", "p-suit", "p-denim"} {
		if err := cartSvc.Add(renter.ID, pid, 1); err != nil {
			t.Fatal(err)
		}
	}

	// The middle line's product goes away between add-to-cart and checkout.
	if err := prodRepo.Claim("p-suit"); err != nil {
		t.Fatal(err)
	}

	results, err := orderSvc.Checkout(renter)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("want 3 results, got %d", len(results))
	}
	byProduct := map[string]services.CheckoutResult{}
	for _, r := range results {
		byProduct[r.ProductID] = r
	}
	if !byProduct["p-saree"].Placed || !byProduct["p-denim"].Placed {
		t.Fatalf("lines 1 and 3 should succeed: %+v", results)
	}
	if byProduct["p-suit"].Placed || byProduct["p-suit"].Error == "" {
		t.Fatalf("line 2 should fail with an availability error: %+v", byProduct["p-suit"])
	}

	// Failed lines stay in the cart; successful ones are drained.
	cv, err := cartSvc.View(renter.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 1 || cv.Lines[0].ProductID != "p-suit" {
		t.Fatalf("cart should retain only the failed line: %+v", cv.Lines)
	}
}
