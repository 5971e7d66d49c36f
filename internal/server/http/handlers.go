package internalhttp

import (
	"net/http"
	"strings"
	"time"

	"github.com/campusboard/calendar/internal/editor"
	"github.com/campusboard/calendar/internal/storage"
	"github.com/campusboard/calendar/internal/timewindow"
	"github.com/labstack/echo/v4"
)

const anchorLayout = "2006-01-02"

func (s *Server) getCalendar(c echo.Context) error {
	anchor := timewindow.Today()
	if raw := c.QueryParam("anchor"); raw != "" {
		parsed, err := time.ParseInLocation(anchorLayout, raw, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "anchor must be formatted as "+anchorLayout)
		}
		anchor = parsed
	}

	granularity := timewindow.Month
	if raw := c.QueryParam("granularity"); raw != "" {
		parsed, err := timewindow.ParseGranularity(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		granularity = parsed
	}

	var active []storage.Category
	if raw := c.QueryParam("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			category := storage.Category(strings.TrimSpace(part))
			if !category.Valid() {
				return echo.NewHTTPError(http.StatusBadRequest, "unknown category "+part)
			}
			active = append(active, category)
		}
	}

	projection, err := s.app.Calendar(c.Request().Context(), anchor, granularity, active)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"granularity": projection.Window.Granularity,
		"anchor":      projection.Window.Anchor.Format(anchorLayout),
		"start":       projection.Window.Start,
		"end":         projection.Window.End,
		"days":        projection.Days,
		"hours":       projection.Hours,
	})
}

func (s *Server) getCategories(c echo.Context) error {
	type categoryInfo struct {
		ID string `json:"id"`
		storage.CategoryMeta
	}
	categories := make([]categoryInfo, 0, len(storage.Categories()))
	for _, category := range storage.Categories() {
		meta, _ := category.Meta()
		categories = append(categories, categoryInfo{ID: string(category), CategoryMeta: meta})
	}
	return c.JSON(http.StatusOK, categories)
}

func (s *Server) createEvent(c echo.Context) error {
	var draft editor.Draft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed event draft")
	}
	event, err := s.app.CreateEvent(c.Request().Context(), draft)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, event)
}

func (s *Server) updateEvent(c echo.Context) error {
	var draft editor.Draft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed event draft")
	}
	event, err := s.app.UpdateEvent(c.Request().Context(), c.Param("id"), draft)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, event)
}

func (s *Server) deleteEvent(c echo.Context) error {
	if err := s.app.RemoveEvent(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getEvent(c echo.Context) error {
	event, err := s.app.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, event)
}

func (s *Server) shareEvent(c echo.Context) error {
	var body struct {
		Recipients []string `json:"recipients"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed share request")
	}
	if len(body.Recipients) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "recipients must not be empty")
	}
	result, err := s.app.ShareEvent(c.Request().Context(), c.Param("id"), body.Recipients)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) respondShare(c echo.Context) error {
	var body struct {
		Decision string `json:"decision"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed respond request")
	}
	share, err := s.app.RespondShare(
		c.Request().Context(),
		c.Param("id"),
		c.Param("recipient"),
		storage.ShareStatus(body.Decision),
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, share)
}

func (s *Server) getShares(c echo.Context) error {
	var status []storage.ShareStatus
	if raw := c.QueryParam("status"); raw != "" {
		switch st := storage.ShareStatus(raw); st {
		case storage.SharePending, storage.ShareAccepted, storage.ShareDeclined:
			status = append(status, st)
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "unknown share status "+raw)
		}
	}
	shares, err := s.app.SharedRecipients(c.Request().Context(), c.Param("id"), status...)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, shares)
}
