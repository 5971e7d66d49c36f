package internalhttp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/campusboard/calendar/internal/app"
	"github.com/campusboard/calendar/internal/storage"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Host string
	Port int
}

type Server struct {
	router *echo.Echo
	addr   string
	app    *app.App
}

func NewServer(config Config, app *app.App) *Server {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Use(loggingMiddleware)

	s := &Server{
		router: router,
		addr:   net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		app:    app,
	}

	router.GET("/calendar", s.getCalendar)
	router.GET("/categories", s.getCategories)
	router.POST("/events", s.createEvent)
	router.PUT("/events/:id", s.updateEvent)
	router.DELETE("/events/:id", s.deleteEvent)
	router.GET("/events/:id", s.getEvent)
	router.POST("/events/:id/shares", s.shareEvent)
	router.POST("/events/:id/shares/:recipient/respond", s.respondShare)
	router.GET("/events/:id/shares", s.getShares)
	return s
}

func (s *Server) Start(_ context.Context) error {
	log.Printf("starting http server on %s", s.addr)
	err := s.router.Start(s.addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.router.Shutdown(ctx)
}

// httpError maps the engine's error taxonomy onto HTTP statuses. Unknown
// errors stay internal and are not leaked to clients.
func httpError(err error) error {
	var verr *storage.ValidationError
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, echo.Map{
			"error":  storage.ErrValidation.Error(),
			"fields": verr.Fields,
		})
	case errors.Is(err, storage.ErrValidation):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, storage.ErrNotFoundEvent), errors.Is(err, storage.ErrNotFoundShare):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrInvalidTransition), errors.Is(err, storage.ErrDuplicateEventID):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		log.Errorf("internal error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
