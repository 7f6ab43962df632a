package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"callbreak-server/internal/config"
	"callbreak-server/internal/mux"
	"callbreak-server/internal/rng"
	"callbreak-server/pkg/game"
	"callbreak-server/pkg/pubsub"
	"callbreak-server/pkg/room"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	listenAddr := cfg.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	bus := newBus(cfg)
	engine := game.NewEngine(game.NewStore(), bus, rng.Crypto{}, time.Duration(cfg.DepartureSettleMS)*time.Millisecond)

	pitBoss := room.NewPitBoss(engine, bus)
	if err := pitBoss.StartShift(); err != nil {
		logrus.WithError(err).Fatal("could not subscribe to the broadcast fabric")
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, engine, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// newBus picks the broadcast fabric. Without a Redis URL, events only reach
// clients connected to this process.
func newBus(cfg config.Config) pubsub.Bus {
	if cfg.RedisURL == "" {
		logrus.Warn("no redis URL configured; running single-process")
		return pubsub.NewMemory()
	}

	bus, err := pubsub.NewRedis(cfg.RedisURL)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to redis")
	}

	logrus.WithField("url", cfg.RedisURL).Info("using redis broadcast fabric")
	return bus
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
