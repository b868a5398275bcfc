package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/sanrasta/psychology/pkg/communication"
	"github.com/sanrasta/psychology/pkg/environment"
	"github.com/sanrasta/psychology/pkg/locking"
	"github.com/sanrasta/psychology/pkg/logger"
	"github.com/sanrasta/psychology/pkg/owners"
	"github.com/sanrasta/psychology/pkg/scheduling"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	var logging logger.Interface = logger.Logger{}
	fmt.Println("Server is starting up...")

	environment.Initialize()

	switch environment.Global.Environment {
	case environment.Production, environment.Staging:
		if environment.Global.Redis == "" {
			logging.Warning("Running without Redis, locking and caching stay process local", nil)
		}
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(environment.Global.DatabaseUrl))
	if err != nil {
		log.Fatal(err)
	}

	var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = client.Connect(ctx)
	if err != nil {
		log.Panic(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Panic(err)
	}

	defer func() {
		err := client.Disconnect(ctx)
		if err != nil {
			logging.Fatal(err)
		}
	}()

	fmt.Println("Database connected")

	db := client.Database(environment.Global.Database)

	ownerCollection := db.Collection("Owners")
	scheduleCollection := db.Collection("Schedules")

	responseManager := communication.ResponseManager{Logger: logging}

	var locker locking.LockerInterface = locking.NewLockerMemory()
	var ownerCache scheduling.OwnerDataCacheInterface

	if environment.Global.Redis != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     environment.Global.Redis,
			Password: environment.Global.RedisPassword,
		})

		locker = locking.NewLockerRedis(redisClient)

		ownerCache, err = scheduling.NewOwnerCacheRedis(redisClient)
		if err != nil {
			logging.Fatal(err)
		}
	} else {
		ownerCache, err = scheduling.NewOwnerCacheMemory()
		if err != nil {
			logging.Fatal(err)
		}
	}

	var ownerRepository owners.OwnerRepositoryInterface = owners.OwnerRepository{DB: ownerCollection, Logger: logging}
	ownerHandler := owners.Handler{OwnerRepository: ownerRepository, Logger: logging, ResponseManager: &responseManager}

	var scheduleRepository scheduling.ScheduleRepositoryInterface = scheduling.ScheduleRepository{DB: scheduleCollection, Logger: logging}
	sourceManager := scheduling.NewCalendarSourceManager(ownerRepository, logging)
	availabilityService := scheduling.NewAvailabilityService(scheduleRepository, ownerRepository, sourceManager, ownerCache, logging)

	scheduleHandler := scheduling.Handler{
		ScheduleRepository:  scheduleRepository,
		AvailabilityService: availabilityService,
		Locker:              locker,
		Logger:              logging,
		ResponseManager:     &responseManager,
	}

	r := mux.NewRouter()
	r.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)

		_, err := fmt.Fprint(writer, "Welcome to the API! ✔")
		if err != nil {
			log.Printf("Error: %v\n", err)
		}
	})

	r.HandleFunc("/v1/owners", ownerHandler.OwnerAdd).Methods(http.MethodPost)
	r.HandleFunc("/v1/owners/{ownerID}", ownerHandler.OwnerGet).Methods(http.MethodGet)
	r.HandleFunc("/v1/owners/{ownerID}", ownerHandler.OwnerDelete).Methods(http.MethodDelete)
	r.HandleFunc("/v1/owners/{ownerID}/calendar/google/connect", ownerHandler.GoogleCalendarConnect).Methods(http.MethodGet)
	r.HandleFunc("/v1/calendar/google/callback", ownerHandler.GoogleCalendarCallback).Methods(http.MethodGet)

	r.HandleFunc("/v1/owners/{ownerID}/schedule", scheduleHandler.ScheduleGet).Methods(http.MethodGet)
	r.HandleFunc("/v1/owners/{ownerID}/schedule", scheduleHandler.ScheduleSave).Methods(http.MethodPut)
	r.HandleFunc("/v1/owners/{ownerID}/availability", scheduleHandler.AvailabilityGet).Methods(http.MethodGet)

	corsOrigin := environment.Global.Cors
	if corsOrigin == "" && environment.Global.Environment == environment.Dev {
		corsOrigin = "*"
	}

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Content-Type", "application/json")
			if corsOrigin != "" {
				w.Header().Add("Access-Control-Allow-Origin", corsOrigin)
			}
			next.ServeHTTP(w, r)
		})
	})

	port := environment.Global.Port
	if port == "" {
		port = "80"
	}

	http.Handle("/", r)
	log.Panic(http.ListenAndServe(":"+port, r))
}
