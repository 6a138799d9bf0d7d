package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/organizeme/internal/storage"
	"github.com/sandeepkv93/organizeme/internal/suggest"
)

type errorResponse struct {
	Error string `json:"error"`
}

type suggestionsResponse struct {
	Categories []string `json:"categories"`
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func postSuggestions(svc *suggest.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req suggest.Request
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: suggest.MessageInvalidInput})
		}
		categories, err := svc.SuggestCategories(c.Request().Context(), req.TaskTitle)
		switch {
		case errors.Is(err, suggest.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: suggest.Message(err)})
		case err != nil:
			return c.JSON(http.StatusBadGateway, errorResponse{Error: suggest.Message(err)})
		}
		return c.JSON(http.StatusOK, suggestionsResponse{Categories: categories})
	}
}

func getState(ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		snap, err := storage.NewCookieStore(c.Request(), nil, ttl).Load(c.Request().Context())
		if err != nil {
			// Missing and corrupt cookies both mean the client should fall back
			// to its defaults.
			return c.JSON(http.StatusNotFound, errorResponse{Error: "state not found"})
		}
		return c.JSON(http.StatusOK, snap)
	}
}

func putState(ttl time.Duration, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var snap storage.Snapshot
		if err := json.NewDecoder(c.Request().Body).Decode(&snap); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid state"})
		}
		for _, t := range snap.Tasks {
			if err := t.Validate(); err != nil {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			}
		}
		for _, cat := range snap.Categories {
			if err := cat.Validate(); err != nil {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			}
		}
		if err := storage.NewCookieStore(c.Request(), c.Response(), ttl).Save(c.Request().Context(), snap); err != nil {
			logger.WithError(err).Error("error saving state cookies")
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to save state"})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
