package handlers

import (
	"candelore/internal/config"
	"candelore/internal/repos"
	"candelore/internal/services"
	"candelore/internal/uploads"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Public            *PublicHandler
	Cart              *CartHandler
	Checkout          *CheckoutHandler
	Auth              *AuthHandler
	AdminProducts     *AdminProductsHandler
	AdminCompositions *AdminCompositionsHandler
	AdminOrders       *AdminOrdersHandler
	AuthSvc           *services.AuthService
	SID               SIDCodec
}

func NewDeps(db *sqlx.DB, cfg config.Config, files *uploads.Store) *Deps {
	prodRepo := repos.NewProductRepo(db)
	colorRepo := repos.NewColorRepo(db)
	imageRepo := repos.NewImageRepo(db)
	compRepo := repos.NewCompositionRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, colorRepo, imageRepo, files)
	compSvc := services.NewCompositionService(compRepo, files)
	cartSvc := services.NewCartService(cartRepo, prodRepo, colorRepo, imageRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, prodRepo, colorRepo, orderRepo)
	authSvc := &services.AuthService{Users: userRepo}

	sid := NewSIDCodec(cfg.SessionSecret)

	return &Deps{
		Public:            &PublicHandler{Catalog: catalogSvc, Comps: compSvc},
		Cart:              &CartHandler{Cart: cartSvc, SID: sid},
		Checkout:          &CheckoutHandler{Cart: cartSvc, Checkout: checkoutSvc, Orders: orderRepo, SID: sid},
		Auth:              &AuthHandler{Auth: authSvc, SID: sid},
		AdminProducts:     &AdminProductsHandler{Catalog: catalogSvc},
		AdminCompositions: &AdminCompositionsHandler{Comps: compSvc},
		AdminOrders:       &AdminOrdersHandler{Orders: orderRepo},
		AuthSvc:           authSvc,
		SID:               sid,
	}
}
