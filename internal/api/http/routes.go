package httpapi

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/weather-lookup/internal/presenter"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

var validate = validator.New()

// Deps are the collaborators shared by all handlers.
type Deps struct {
	Service       *weather.Service
	Sessions      *store.SessionStore
	Logger        *zap.Logger
	SearchTimeout time.Duration
}

// ErrorHandler renders every handler error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTML page and the JSON API into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.SearchTimeout <= 0 {
		d.SearchTimeout = 20 * time.Second
	}
	h := &handlers{Deps: d}

	app.Get("/", h.page)

	v1 := app.Group("/api/v1")
	v1.Get("/weather", h.weatherJSON)
	v1.Post("/sessions", h.createSession)
	v1.Get("/sessions/:id", h.getSession)
	v1.Post("/sessions/:id/search", h.startSearch)
}

type handlers struct {
	Deps
}

// page serves the server-rendered front end. The error slot and the
// weather block are never shown together.
func (h *handlers) page(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("city"))
	page := presenter.Page{Query: query}

	if query != "" {
		ctx, cancel := context.WithTimeout(c.UserContext(), h.SearchTimeout)
		defer cancel()

		result, err := h.Service.Search(ctx, query)
		if err != nil {
			page.Error = weather.UserMessage(err)
		} else {
			view := presenter.Build(result)
			page.View = &view
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	if err := presenter.RenderPage(c, page); err != nil {
		h.Logger.Error("render page", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	return nil
}

// weatherQuery holds query parameters for the one-shot weather endpoint.
type weatherQuery struct {
	City string `validate:"required"`
	Days int    `validate:"min=1,max=7"`
}

func (q *weatherQuery) bind(c *fiber.Ctx, defaultDays int) error {
	q.City = strings.TrimSpace(c.Query("city"))
	q.Days = defaultDays

	if s := c.Query("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("days must be an integer")
		}
		q.Days = n
	}

	return validate.Struct(q)
}

func (h *handlers) weatherJSON(c *fiber.Ctx) error {
	var q weatherQuery
	if err := q.bind(c, h.Service.Days()); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.SearchTimeout)
	defer cancel()

	result, err := h.Service.SearchDays(ctx, q.City, q.Days)
	if err != nil {
		if errors.Is(err, weather.ErrPlaceNotFound) {
			return fiber.NewError(fiber.StatusNotFound, weather.UserMessage(err))
		}
		return fiber.NewError(fiber.StatusBadGateway, weather.UserMessage(err))
	}

	return c.JSON(presenter.Build(result))
}

func (h *handlers) createSession(c *fiber.Ctx) error {
	id := h.Sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *handlers) getSession(c *fiber.Ctx) error {
	state, err := h.Sessions.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "unknown session")
		}
		return err
	}
	return c.JSON(state)
}

type searchRequest struct {
	City string `json:"city" validate:"required"`
}

// startSearch kicks off a search in the background. Only the most recently
// started search of a session may update it.
func (h *handlers) startSearch(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.City = strings.TrimSpace(req.City)
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// Fiber reuses request buffers once the handler returns.
	id := strings.Clone(c.Params("id"))
	city := strings.Clone(req.City)

	seq, err := h.Sessions.Begin(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "unknown session")
		}
		return err
	}

	go h.runSearch(id, seq, city)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"id": id, "seq": seq})
}

func (h *handlers) runSearch(id string, seq uint64, city string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.SearchTimeout)
	defer cancel()

	var (
		view    *presenter.View
		message string
	)
	result, err := h.Service.Search(ctx, city)
	if err != nil {
		message = weather.UserMessage(err)
	} else {
		v := presenter.Build(result)
		view = &v
	}

	applied, err := h.Sessions.Finish(id, seq, view, message)
	switch {
	case err != nil:
		h.Logger.Debug("session gone before search finished", zap.String("session", id), zap.Error(err))
	case !applied:
		h.Logger.Debug("discarding stale search result",
			zap.String("session", id),
			zap.Uint64("seq", seq),
			zap.String("city", city))
	}
}
