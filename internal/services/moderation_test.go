package services_test

import (
	"errors"
	"testing"
	"time"

	"closetloop/internal/domain"
	"closetloop/internal/filter"
	"closetloop/internal/repos"
	"closetloop/internal/services"
)

func TestModeration_BannedUserDenied(t *testing.T) {
	db := memdbAll(t)
	prodRepo := repos.NewProductRepo(db)
	prodSvc := services.NewProductService(prodRepo, repos.NewOrderRepo(db), repos.NewSwapRepo(db))
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db), prodRepo, repos.NewCartRepo(db))
	swapSvc := services.NewSwapService(repos.NewSwapRepo(db), prodRepo)

	banned := user(t, db, "u-banned")

	if _, err := prodSvc.Create(banned, services.NewListing{Name: "Party Gown", DurationDays: 7}); !errors.Is(err, domain.ErrAuthorization) {
		t.Fatalf("createListing: want ErrAuthorization, got %v", err)
	}
	if _, err := orderSvc.Place(banned, "p-saree"); !errors.Is(err, domain.ErrAuthorization) {
		t.Fatalf("placeOrder: want ErrAuthorization, got %v", err)
	}
	if _, err := swapSvc.Propose(banned, "u-owner", "p-denim", "p-saree"); !errors.Is(err, domain.ErrAuthorization) {
		t.Fatalf("proposeSwap: want ErrAuthorization, got %v", err)
	}
}

func TestModeration_BannedOwnerCanStillFulfill(t *testing.T) {
	db := memdbAll(t)
	prodRepo := repos.NewProductRepo(db)
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db), prodRepo, repos.NewCartRepo(db))

	// An order exists, then the owner gets banned.
	o, err := orderSvc.Place(user(t, db, "u-renter"), "p-saree")
	if err != nil {
		t.Fatal(err)
	}
	until := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	if err := repos.NewUserRepo(db).Ban("u-owner", until, false); err != nil {
		t.Fatal(err)
	}

	owner := user(t, db, "u-owner")
	if !owner.Banned(time.Now()) {
		t.Fatal("owner should read as banned")
	}

	// Existing commitments still advance so the renter gets their item back.
	if _, err := orderSvc.AdvanceStatus(o.ID, domain.OrderShipped, owner); err != nil {
		t.Fatalf("banned owner should still fulfill: %v", err)
	}
	if _, err := orderSvc.AdvanceStatus(o.ID, domain.OrderReturned, owner); err != nil {
		t.Fatal(err)
	}

	// Banned listings stay visible in the catalog.
	prodSvc := services.NewProductService(prodRepo, repos.NewOrderRepo(db), repos.NewSwapRepo(db))
	products, err := prodSvc.Browse(filter.FilterSet{})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, p := range products {
		if p.OwnerID == "u-owner" {
			found = true
		}
	}
	if !found {
		t.Fatal("banned user's listings should remain visible")
	}
}

func TestModeration_BanExpires(t *testing.T) {
	db := memdbAll(t)
	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	if err := repos.NewUserRepo(db).Ban("u-renter", past, false); err != nil {
		t.Fatal(err)
	}
	u := user(t, db, "u-renter")
	if u.Banned(time.Now()) {
		t.Fatal("expired ban should not count")
	}
}

func TestForceRemove_AdminOnlyAndTerminal(t *testing.T) {
	db := memdbAll(t)
	prodRepo := repos.NewProductRepo(db)
	prodSvc := services.NewProductService(prodRepo, repos.NewOrderRepo(db), repos.NewSwapRepo(db))
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db), prodRepo, repos.NewCartRepo(db))
	swapSvc := services.NewSwapService(repos.NewSwapRepo(db), prodRepo)

	// Non-admin, even the owner, cannot force-remove.
	if err := prodSvc.ForceRemove("p-saree", user(t, db, "u-owner")); !errors.Is(err, domain.ErrAuthorization) {
		t.Fatalf("want ErrAuthorization, got %v", err)
	}

	if err := prodSvc.ForceRemove("p-saree", user(t, db, "u-admin")); err != nil {
		t.Fatal(err)
	}

	// The record survives for history but is permanently inert:
	// unavailable, not missing.
	if _, err := prodRepo.Get("p-saree"); err != nil {
		t.Fatalf("removed product should still resolve: %v", err)
	}
	if _, err := orderSvc.Place(user(t, db, "u-renter"), "p-saree"); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("placeOrder on removed: want ErrUnavailable, got %v", err)
	}
	if _, err := swapSvc.Propose(user(t, db, "u-renter"), "u-owner", "p-denim", "p-saree"); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("proposeSwap on removed: want ErrUnavailable, got %v", err)
	}

	// The owner cannot bring it back.
	if _, err := prodSvc.ToggleAvailability("p-saree", "u-owner"); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("toggle on removed: want ErrUnavailable, got %v", err)
	}
}

func TestToggleAvailability_OwnerOnly(t *testing.T) {
	db := memdbAll(t)
	prodSvc := services.NewProductService(repos.NewProductRepo(db), repos.NewOrderRepo(db), repos.NewSwapRepo(db))

	if _, err := prodSvc.ToggleAvailability("p-saree", "u-renter"); !errors.Is(err, domain.ErrAuthorization) {
		t.Fatalf("want ErrAuthorization, got %v", err)
	}

	p, err := prodSvc.ToggleAvailability("p-saree", "u-owner")
	if err != nil {
		t.Fatal(err)
	}
	if p.Available {
		t.Fatal("toggle should flip availability off")
	}
	p, err = prodSvc.ToggleAvailability("p-saree", "u-owner")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Available {
		t.Fatal("toggle should flip availability back on")
	}
}
