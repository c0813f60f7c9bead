package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Ssnnee/theo-afrique-website/config"
	"github.com/Ssnnee/theo-afrique-website/internal/adminapi"
	"github.com/Ssnnee/theo-afrique-website/internal/app"
	"github.com/Ssnnee/theo-afrique-website/internal/auth"
	"github.com/Ssnnee/theo-afrique-website/internal/catalog"
	"github.com/Ssnnee/theo-afrique-website/internal/storeapi"
	"github.com/Ssnnee/theo-afrique-website/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "theoafrique.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
)

var version = "dev"

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		os.Stdout.WriteString("theoafrique " + version + "\n")
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		os.Exit(0)
	}

	mailer := auth.NewSmtpMailer(cfg.Smtp)
	authService := auth.NewService(application.DB(), mailer, cfg.Web.Secret, cfg.Web.SiteURL)
	catalogService := catalog.NewService(catalog.NewGormRepository(application.DB()), nil)

	server := webserver.Init(application, authService)
	adminapi.InitRouter()
	storeapi.InitRouter(catalogService, authService)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		zap.L().Info("shutting down")
		_ = server.Shutdown()
	}()

	if err := server.Listen(); err != nil {
		zap.L().Error("web server stopped", zap.Error(err))
	}
}
