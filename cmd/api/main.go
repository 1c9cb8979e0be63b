package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pims/admin"
	"pims/application"
	"pims/auth"
	"pims/config"
	"pims/db"
	"pims/httpapi"
	"pims/job"
	"pims/notify"
	"pims/student"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	var notifier application.Notifier = notify.LogSender{}
	if cfg.SMTPHost != "" {
		notifier = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	authService := auth.NewService(pool, auth.NewRepository(pool), cfg.JWTSecret, cfg.TokenTTL)
	studentService := student.NewService(student.NewRepository(pool))
	jobService := job.NewService(job.NewRepository(pool))
	applicationService := application.NewService(application.NewRepository(pool), notifier)
	adminService := admin.NewService(admin.NewRepository(pool))

	server := httpapi.NewServer(authService, studentService, jobService, applicationService, adminService, cfg.CORSOrigins)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("placement API listening on %s", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
