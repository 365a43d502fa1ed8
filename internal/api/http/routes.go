package httpapi

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tempdash/temperature-dashboard/internal/analysis"
	"github.com/tempdash/temperature-dashboard/internal/series"
	"github.com/tempdash/temperature-dashboard/internal/store"
	"github.com/tempdash/temperature-dashboard/internal/weather"
)

var validate = validator.New()

// Deps bundles what the handlers need.
type Deps struct {
	Store   *store.MemoryStore
	Fetcher weather.Fetcher
	Opts    analysis.Options
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Post("/datasets", func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "multipart field 'file' is required")
		}

		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cannot open uploaded file")
		}
		defer f.Close()

		ds, err := series.Load(f)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		deps.Store.SetDataset(ds)
		log.Printf("INFO: loaded dataset: %d records, %d cities", len(ds), len(ds.Cities()))

		return c.JSON(fiber.Map{
			"records":  len(ds),
			"cities":   ds.Cities(),
			"loadedAt": deps.Store.LoadedAt(),
		})
	})

	v1.Get("/cities", func(c *fiber.Ctx) error {
		cities, err := deps.Store.Cities()
		if err != nil {
			return mapStoreErr(err)
		}
		return c.JSON(fiber.Map{"cities": cities})
	})

	v1.Get("/analysis", func(c *fiber.Ctx) error {
		req, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cs, err := deps.Store.CitySeries(req.City)
		if err != nil {
			return mapStoreErr(err)
		}

		res, err := analysis.Run(c.Context(), req.City, cs, deps.Opts)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "analysis failed: "+err.Error())
		}
		deps.Store.SaveResult(req.City, res)

		return c.JSON(res)
	})

	v1.Get("/live", func(c *fiber.Ctx) error {
		var req liveQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		hist, err := deps.Store.Dataset()
		if err != nil {
			return mapStoreErr(err)
		}

		season := req.Season
		if season == "" {
			// The dashboard defaults to the season of the city's most
			// recent row, matching what a user sees on screen.
			season = hist.LastSeason(req.City)
			if season == "" {
				return fiber.NewError(fiber.StatusNotFound, "no data for city")
			}
		}

		temp, err := deps.Fetcher.FetchCurrent(c.Context(), req.City)
		if err != nil {
			if errors.Is(err, weather.ErrUnauthorized) {
				return fiber.NewError(fiber.StatusUnauthorized, "weather api key rejected")
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch live reading")
		}

		lc := analysis.ClassifyReading(temp, req.City, season, hist)
		deps.Store.SaveLive(req.City, lc)

		return c.JSON(lc)
	})

	v1.Get("/live/latest", func(c *fiber.Ctx) error {
		req, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		lc, err := deps.Store.GetLive(req.City)
		if err != nil {
			return mapStoreErr(err)
		}
		return c.JSON(lc)
	})
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNoDataset):
		return fiber.NewError(fiber.StatusConflict, "no dataset loaded; upload one first")
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no data for requested city")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// cityQuery holds the query parameter identifying a city.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	var q cityQuery
	q.City = c.Query("city")

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// liveQuery holds query parameters for the live classification endpoint.
type liveQuery struct {
	City   string `validate:"required"`
	Season string
}

func (l *liveQuery) bind(c *fiber.Ctx) error {
	cq, err := parseCityQuery(c)
	if err != nil {
		return err
	}
	l.City = cq.City
	l.Season = c.Query("season")
	return nil
}
