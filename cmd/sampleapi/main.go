package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/2beens/fitdash/internal/logging"
	"github.com/2beens/fitdash/internal/middleware"
	"github.com/2beens/fitdash/internal/sampleapi"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// sampleapi serves the fitness backend API with two reference users (12 and
// 18) and generated users for any other id, for local development.
func main() {
	host := flag.String("host", "localhost", "host to listen on")
	port := flag.Int("port", 3000, "port to listen on")
	logLevel := flag.String("loglvl", "debug", "log level")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		Service:     "fitdash-sampleapi",
		LogToStdout: true,
		LogLevel:    *logLevel,
	})

	handler := sampleapi.NewHandler()
	r := mux.NewRouter()
	handler.SetupRoutes(r)
	r.Use(middleware.LogRequest())
	r.Use(middleware.Cors())

	addr := net.JoinHostPort(*host, strconv.Itoa(*port))
	httpServer := &http.Server{
		Handler:      r,
		Addr:         addr,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	go func() {
		log.Infof(" > sample api listening on: [%s]", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("sample api, listen and serve: %s", err)
		}
	}()

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)
	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Errorf("sample api shutdown: %s", err)
	}
}
