package main

import (
	"os"
	"os/signal"
	"syscall"

	"avtoperegon.pro/configs"
	"avtoperegon.pro/configs/configsdatabase"
	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configs.LoadEnv()
	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	engine := html.New(configs.ViewsPath(), ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
	})

	routes.SetupRoutes(app)

	// Graceful shutdown: SIGINT/SIGTERM geldiğinde açık istekler bitene
	// kadar beklenir, sonra bağlantılar kapatılır.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
	}()

	addr := configs.AppPort()
	configslog.SLog.Infof("HTTP sunucusu dinlemede: %s", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("HTTP sunucusu başlatılamadı", zap.Error(err))
	}
}
