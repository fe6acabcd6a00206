package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	env := "PORT=9090\nDB_NAME=cinema\nREDIS_ADDR=localhost:6379\nLOCK_TTL_SECONDS=3\nTIMEZONE=UTC\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "cinema", cfg.Database.Name)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3*time.Second, cfg.Redis.LockTTL)
	assert.Empty(t, cfg.Broker.URL)

	loc, err := cfg.App.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.App.Port)
	assert.Equal(t, "cinema-manager", cfg.App.Name)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
}

func TestParseDateTime(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("CET", 3600)

	got, err := ParseDateTime("25/12/2030", "21:15", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, time.December, 25, 21, 15, 0, 0, loc), got)
	assert.Equal(t, "25/12/2030", FormatDate(got, loc))
	assert.Equal(t, "21:15", FormatTime(got, loc))

	_, err = ParseDateTime("2030-12-25", "21:15", loc)
	assert.Error(t, err)
	_, err = ParseDateTime("25/12/2030", "9pm", loc)
	assert.Error(t, err)
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()
	type req struct {
		Date  string `json:"date" validate:"required,datetime=02/01/2006"`
		Price string `json:"price" validate:"required,decimal"`
	}

	assert.Nil(t, ValidateStruct(req{Date: "01/02/2030", Price: "8.50"}))

	errs := ValidateStruct(req{Date: "2030-02-01", Price: "eight"})
	require.Len(t, errs, 2)
	assert.Contains(t, errs, "date")
	assert.Equal(t, "Must be a decimal number", errs["price"])
	assert.Equal(t, "date: Must match layout 02/01/2006; price: Must be a decimal number", FormatValidationErrors(errs))
}

func TestValidatorRegistersCustomTags(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { newValidator() })

	type seat struct {
		Name string `json:"name" validate:"required,excludesall=-"`
	}
	assert.Nil(t, ValidateStruct(seat{Name: "A1"}))
	errs := ValidateStruct(seat{Name: "A-1"})
	assert.Equal(t, `Must not contain any of "-"`, errs["name"])
}
