package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusboard/calendar/internal/app"
	"github.com/campusboard/calendar/internal/logger"
	internalhttp "github.com/campusboard/calendar/internal/server/http"
	"github.com/campusboard/calendar/internal/storage"
	memorystorage "github.com/campusboard/calendar/internal/storage/memory"
	"github.com/campusboard/calendar/internal/util"
	log "github.com/sirupsen/logrus"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "./configs/config.yaml", "Path to configuration file")
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.WarnLevel)
}

func main() {
	flag.Parse()

	config, err := NewConfig(configFile)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}
	err = logger.PrepareLogger(config.Logger)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}
	weekStart, err := util.ParseWeekday(config.Calendar.WeekStart)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}
	defaultCategory := storage.Category(config.Calendar.DefaultCategory)
	if !defaultCategory.Valid() {
		log.Errorf("failed to start: unknown default category %q", config.Calendar.DefaultCategory)
		return
	}

	calendar := app.New(memorystorage.New(), app.Config{
		WeekStart:       weekStart,
		DefaultCategory: defaultCategory,
		MaxEventsPerDay: config.Calendar.MaxEventsPerDay,
	})
	server := internalhttp.NewServer(config.HTTPServer, calendar)

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			log.Error("failed to stop http server: " + err.Error())
		}
	}()

	log.Info("calendar is running...")

	if err := server.Start(ctx); err != nil {
		log.Error("failed to start http server: " + err.Error())
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}
