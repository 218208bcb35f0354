package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ledgerline-dev/ledgerline/internal/balance"
	"github.com/ledgerline-dev/ledgerline/internal/buildinfo"
	"github.com/ledgerline-dev/ledgerline/internal/migration"
)

// timeParamLayout is the format of the optional from/to query parameters.
const timeParamLayout = "2006-01-02T15:04:05"

// API holds the handlers for the HTTP surface.
type API struct {
	migrations *migration.Service
	balances   *balance.Service
	log        zerolog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

// MigrateCSV handles POST /api/v1/migrate. It accepts a multipart form
// with the CSV under the csv_file field and responds 200 with an empty
// body on success; the report travels through the configured channels.
func (a *API) MigrateCSV(c *gin.Context) {
	file, err := c.FormFile("csv_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "csv_file is required"})
		return
	}

	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "uploaded file is empty"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "file must be a .csv"})
		return
	}
	if ct := file.Header.Get("Content-Type"); ct != "" && ct != "text/csv" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "content type must be text/csv"})
		return
	}

	f, err := file.Open()
	if err != nil {
		a.log.Error().Err(err).Str("filename", file.Filename).Msg("opening upload")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	defer f.Close()

	a.log.Info().Str("filename", file.Filename).Int64("size", file.Size).Msg("processing CSV upload")

	_, err = a.migrations.ProcessCSV(c.Request.Context(), f, file.Filename, file.Size)
	if err != nil {
		var headerErr *migration.HeaderError
		if errors.Is(err, migration.ErrEmptyFile) || errors.As(err, &headerErr) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		a.log.Error().Err(err).Str("filename", file.Filename).Msg("processing CSV")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	c.Status(http.StatusOK)
}

// UserBalance handles GET /api/v1/users/:user_id/balance with optional
// inclusive from/to query parameters. An empty result set is a 400, not
// a 404: the store cannot tell an unknown user from one with no activity.
func (a *API) UserBalance(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "user_id must be a positive integer"})
		return
	}

	from, ok := timeParam(c, "from")
	if !ok {
		return
	}
	to, ok := timeParam(c, "to")
	if !ok {
		return
	}
	if from != nil && to != nil && from.After(*to) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "from must not be after to"})
		return
	}

	info, err := a.balances.UserBalance(c.Request.Context(), userID, from, to)
	if err != nil {
		if errors.Is(err, balance.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "user not found"})
			return
		}
		a.log.Error().Err(err).Int("user_id", userID).Msg("querying balance")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, info)
}

// Health handles GET /health.
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// timeParam parses an optional query parameter; on a malformed value it
// writes the 400 response itself and reports false.
func timeParam(c *gin.Context, name string) (*time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(timeParamLayout, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: name + " must use format " + timeParamLayout})
		return nil, false
	}
	return &t, true
}
