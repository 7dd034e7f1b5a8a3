package app

import (
	"context"
	"net/http"

	"planner-auth/internal/account"
	"planner-auth/internal/auth/credentials"
	"planner-auth/internal/auth/handler"
	"planner-auth/internal/auth/provider"
	"planner-auth/internal/auth/provider/google"
	"planner-auth/internal/auth/resolver"
	"planner-auth/internal/auth/token"
	"planner-auth/internal/config"
	"planner-auth/internal/middleware"
	"planner-auth/internal/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "planner-auth"

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		_ = infra.Close()
		return nil, nil, err
	}

	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  cfg.AccessTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
		Issuer:        tokenIssuer,
	})
	if err != nil {
		_ = infra.Close()
		return nil, nil, err
	}

	router := newRouter(cfg, infra, googleProvider, issuer)

	return router, infra.Close, nil
}

// newRouter wires dependencies onto a gin engine. Split from setupHTTP so
// the routing can be exercised without live provider discovery.
func newRouter(
	cfg config.Config,
	infra *Infra,
	p provider.OAuthProvider,
	issuer *token.Issuer,
) *gin.Engine {
	accounts := account.NewGormStore(infra.DB.Gorm)
	identityResolver := resolver.NewStoreResolver(
		accounts,
		credentials.NewBcryptHasher(bcrypt.DefaultCost),
	)

	var nonces session.NonceStore
	if infra.Redis != nil {
		nonces = session.NewRedisNonceStore(infra.Redis.Client)
	}

	authHandler := handler.NewHandler(
		p,
		identityResolver,
		issuer,
		accounts,
		nonces,
		handler.Options{
			FrontendURL:      cfg.FrontendURL,
			DefaultReturnTo:  cfg.DefaultReturnTo,
			FailurePath:      cfg.FailurePath,
			ReturnToPrefixes: cfg.ReturnToPrefixes,
			Cookies: session.CookieOptions{
				Secure:   cfg.SecureCookies(),
				Domain:   cfg.CookieDomain,
				SameSite: http.SameSiteLaxMode,
			},
		},
	)

	authMiddleware := middleware.NewAuthMiddleware(issuer)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler.RegisterRoutes(router, middleware.GinRequireAuth(authMiddleware))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
