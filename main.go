package main

import (
	"context"
	"fmt"
	"time"

	"reservepro/config"
	httpapi "reservepro/internal/api/http"
	"reservepro/internal/identity"
	"reservepro/internal/metrics"
	"reservepro/internal/service"
	"reservepro/internal/session"
	"reservepro/internal/storage"
)

func main() {
	config.LoadEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter(config.ChangesTopic)
	defer writer.Close()

	reservationRepo := storage.NewReservationRepository(db)
	clientRepo := storage.NewClientRepository(db)
	publisher := storage.NewChangePublisher(writer)

	tokenTTL := config.TokenTTL()
	tokens := storage.NewTokenStore(rdb, tokenTTL)
	scopes := storage.NewScopeStore(rdb)

	provider := identity.NewProvider(db, tokens, config.MustTokenSecret(), tokenTTL)
	defer provider.Close()

	// Each subscription gets its own consumer group so scope switches never
	// steal partitions from a live subscription.
	watcher := service.NewWatcher(reservationRepo, func() service.MessageReader {
		groupID := fmt.Sprintf("reservepro-session-%d", time.Now().UnixNano())
		return config.NewKafkaReader(config.ChangesTopic, groupID)
	})

	reservations := service.NewReservationService(reservationRepo, clientRepo, publisher)
	clients := service.NewClientService(clientRepo)

	controller := session.NewController(provider, watcher, scopes, reservations, clients)
	controller.Start(context.Background())
	defer controller.Close()

	handler := httpapi.NewHandler(controller, provider, reservations, service.DefaultQRGenerator{}, metrics.New())
	httpapi.StartServer(config.HTTPAddr(), httpapi.NewRouter(handler))
}
