package handlers

import (
	"closetloop/internal/repos"
	"closetloop/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	SwapHandler     *SwapHandler
	WishlistHandler *WishlistHandler
	ReviewHandler   *ReviewHandler
	PaymentHandler  *PaymentHandler
	AdminHandler    *AdminHandler
	Auth            *services.AuthService
}

func NewDeps(db *sqlx.DB, jwtSecret string) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	swapRepo := repos.NewSwapRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	payRepo := repos.NewPaymentRepo(db)

	authSvc := services.NewAuthService(userRepo, jwtSecret)
	prodSvc := services.NewProductService(prodRepo, orderRepo, swapRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(orderRepo, prodRepo, cartRepo)
	swapSvc := services.NewSwapService(swapRepo, prodRepo)
	wishSvc := services.NewWishlistService(wishRepo)
	reviewSvc := services.NewReviewService(reviewRepo)
	paySvc := services.NewPaymentService(payRepo, orderRepo)

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: authSvc},
		UserHandler:     &UserHandler{Users: userRepo},
		ProductHandler:  &ProductHandler{Products: prodSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		SwapHandler:     &SwapHandler{Swaps: swapSvc},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
		ReviewHandler:   &ReviewHandler{Reviews: reviewSvc},
		PaymentHandler:  &PaymentHandler{Payments: paySvc},
		AdminHandler:    &AdminHandler{Products: prodSvc, Users: userRepo},
		Auth:            authSvc,
	}
}
