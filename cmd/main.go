package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	burst "burst_buy"
	"burst_buy/pkg/apiclient"
	"burst_buy/pkg/cache"
	"burst_buy/pkg/handler"
	"burst_buy/pkg/service"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.Infoln("Запуск сервера")
	if err := godotenv.Load(); err != nil {
		logrus.Infof("Ошибка инициализации переменных окружения .env: %s", err)
	}

	if err := InitConfig(); err != nil {
		logrus.Fatalf("Ошибка (viper) при инициализации конфига .yml: %s", err.Error())
	}
	logrus.Infoln("Конфиг YAML инициализирован")

	views := cache.NewStore[*service.PurchaseView](viper.GetDuration("view.ttl"))
	client := apiclient.NewBurstAPIClient(viper.GetString("api.base_url"))
	services := service.NewService(client, views, service.Config{
		DefaultCurrency: viper.GetString("purchase.default_currency"),
		PaymentLink:     viper.GetString("payment.link"),
		AssetSymbol:     viper.GetString("asset.symbol"),
		Debounce:        viper.GetDuration("suggest.debounce"),
		SuggestLimit:    viper.GetInt("suggest.limit"),
	})
	limiter := rate.NewLimiter(rate.Limit(viper.GetFloat64("view.create_rate")), viper.GetInt("view.create_burst"))
	handlers := handler.NewHandler(services, limiter, viper.GetStringSlice("cors.allow_origins"))

	stop := make(chan struct{})
	go sweepViews(services, viper.GetDuration("view.sweep_interval"), stop)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := new(burst.Server)
	go func() {
		if err := srv.Run(port, handlers.InitRoute()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Ошибка при запуске сервера: %s", err)
		}
	}()
	logrus.Infof("Сервер слушает порт %s", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Infoln("Остановка сервера")
	close(stop)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Ошибка при остановке сервера: %s", err)
	}
}

func InitConfig() error {
	viper.SetDefault("api.base_url", apiclient.DefaultBaseURL)
	viper.SetDefault("payment.link", "https://paypal.me/foxycrypto")
	viper.SetDefault("asset.symbol", "BURST")
	viper.SetDefault("purchase.default_currency", "usd")
	viper.SetDefault("suggest.debounce", 200*time.Millisecond)
	viper.SetDefault("suggest.limit", 10)
	viper.SetDefault("view.ttl", cache.DefaultTTL)
	viper.SetDefault("view.sweep_interval", time.Minute)
	viper.SetDefault("view.create_rate", 5)
	viper.SetDefault("view.create_burst", 10)

	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func sweepViews(services *service.Service, interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := services.Purchase.Sweep(); n > 0 {
				logrus.Infof("Закрыто устаревших видов: %d", n)
			}
		}
	}
}
