package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"maintenance-service/internal/auth"
	"maintenance-service/internal/catalog"
	"maintenance-service/internal/config"
	"maintenance-service/internal/db"
	httphandler "maintenance-service/internal/http"
	"maintenance-service/internal/http/middleware"
	"maintenance-service/internal/logger"
	"maintenance-service/internal/notify"
	"maintenance-service/internal/repository"
	"maintenance-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	vehicleCatalog, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to load vehicle catalog")
	}

	notifier, closeNotifier := newNotifier(cfg, appLogger)

	deps := service.Deps{
		Store:    repository.NewStore(database),
		Notifier: notifier,
		Log:      appLogger,
	}

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(httphandler.Services{
		Vehicles:   service.NewVehicleService(deps, vehicleCatalog),
		Odometer:   service.NewOdometerService(deps),
		Refuels:    service.NewRefuelService(deps),
		OilChanges: service.NewOilChangeService(deps),
		Schedule:   service.NewScheduleService(deps),
		Summary:    service.NewSummaryService(deps),
	}, vehicleCatalog, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting maintenance service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		closeNotifier()
		os.Exit(1)
	}
	closeNotifier()
}

// newNotifier prefers MQTT when a broker is configured and falls back to the
// log. The returned func releases the broker connection.
func newNotifier(cfg *config.Config, log zerolog.Logger) (notify.Notifier, func()) {
	if cfg.MQTT.BrokerURL == "" {
		return notify.NewLogNotifier(log), func() {}
	}

	mqttNotifier, err := notify.NewMQTTNotifier(notify.MQTTConfig{
		BrokerURL:   cfg.MQTT.BrokerURL,
		ClientID:    cfg.MQTT.ClientID,
		TopicPrefix: cfg.MQTT.TopicPrefix,
	}, log)
	if err != nil {
		log.Warn().Err(err).Msg("mqtt unavailable, notifications go to the log")
		return notify.NewLogNotifier(log), func() {}
	}
	return mqttNotifier, mqttNotifier.Close
}
