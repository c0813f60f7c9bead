// Package webserver owns the echo instance and the route registry the API
// packages register themselves on. Public storefront routes live under
// /api, admin routes under /api/admin behind the session JWT and an admin
// role check.
package webserver

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Ssnnee/theo-afrique-website/internal/app"
	"github.com/Ssnnee/theo-afrique-website/internal/auth"
)

const (
	appContextKey     = "theo_app"
	sessionContextKey = "theo_session"
)

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

type WebServer struct {
	appCtx app.AppContext
	authz  *auth.Service
	root   *echo.Echo
	pub    *echo.Group
	admin  *echo.Group
}

var server *WebServer

// Init builds the web server singleton the API packages register routes on.
func Init(appCtx app.AppContext, authz *auth.Service) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &payloadValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI: true, LogStatus: true, LogMethod: true, LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appCtx)
			return next(c)
		}
	})

	pub := e.Group("/api")
	admin := e.Group("/api/admin")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(appCtx.Config().Web.Secret),
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing session")
		},
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := authz.ParseSession(tokenString)
			if err != nil {
				return nil, err
			}
			c.Set(sessionContextKey, claims)
			return claims, nil
		},
	}))
	admin.Use(requireAdmin)

	server = &WebServer{appCtx: appCtx, authz: authz, root: e, pub: pub, admin: admin}
	return server
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetSession(c)
		if claims == nil || claims.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

// GetApp returns the application context injected by middleware.
func GetApp(c echo.Context) app.AppContext {
	appCtx, _ := c.Get(appContextKey).(app.AppContext)
	return appCtx
}

// GetSession returns the session claims of the authenticated caller, or nil
// on public routes.
func GetSession(c echo.Context) *auth.SessionClaims {
	claims, _ := c.Get(sessionContextKey).(*auth.SessionClaims)
	return claims
}

// Public route registry.

func PubGET(path string, h echo.HandlerFunc)  { server.pub.GET(path, h) }
func PubPOST(path string, h echo.HandlerFunc) { server.pub.POST(path, h) }

// Admin route registry.

func ApiGET(path string, h echo.HandlerFunc)    { server.admin.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.admin.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.admin.PUT(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.admin.DELETE(path, h) }

// Listen starts serving and blocks until the server stops.
func (s *WebServer) Listen() error {
	cfg := s.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	return s.root.Start(addr)
}

// Shutdown stops the echo server gracefully.
func (s *WebServer) Shutdown() error {
	return s.root.Close()
}
