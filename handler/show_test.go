package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie_booking/database"
	"movie_booking/middleware"
	"movie_booking/validate"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShowApp() *fiber.App {
	app := fiber.New()
	app.Get("/shows", GetShows)
	app.Post("/shows", middleware.Protected(), validate.CreateShow(), CreateShow)
	app.Get("/shows/:showId/seats", middleware.OptionalJWT(), validate.GetById("showId"), GetSeatsByShow)
	return app
}

func TestGetShowsFiltersByCity(t *testing.T) {
	gormDB, mock := newMockDB(t)
	database.DB = gormDB
	app := newShowApp()

	mock.ExpectQuery(`SELECT (.+) FROM "shows" JOIN theatres ON theatres.id = shows.theatre_id WHERE LOWER\(theatres.city\) = LOWER\(\$1\)`).
		WithArgs("mumbai").
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "theatre_id", "date", "time", "base_price"}).
			AddRow(7, 1, 2, "2026-09-01", "19:00", 200))
	mock.ExpectQuery(`SELECT (.+) FROM "movies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(1, "Inception"))
	mock.ExpectQuery(`SELECT (.+) FROM "theatres"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "size_class"}).AddRow(2, "PVR Phoenix", "Mumbai", "Medium"))

	req := httptest.NewRequest(http.MethodGet, "/shows?city=mumbai", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Inception")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShowGeneratesFullInventory(t *testing.T) {
	gormDB, mock := newMockDB(t)
	database.DB = gormDB
	app := newShowApp()

	mock.ExpectQuery(`SELECT (.+) FROM "movies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(1, "Inception"))
	mock.ExpectQuery(`SELECT (.+) FROM "theatres"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "size_class"}).AddRow(2, "PVR Phoenix", "Mumbai", "Small"))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "shows"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// a Small theatre is 6 rows of 8, created as one bulk insert
	seatIds := sqlmock.NewRows([]string{"id"})
	for i := 1; i <= 48; i++ {
		seatIds.AddRow(i)
	}
	mock.ExpectQuery(`INSERT INTO "seats"`).WillReturnRows(seatIds)
	mock.ExpectCommit()

	payload := `{"movieId":1,"theatreId":2,"date":"2026-09-01","time":"19:00","basePrice":200}`
	req := httptest.NewRequest(http.MethodPost, "/shows", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, 1))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func seatSnapshotRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "show_id", "seat_number", "category", "price", "is_booked", "user_id"}).
		AddRow(1, 7, "A1", "Silver", 150, true, 5).
		AddRow(2, 7, "A2", "Silver", 150, true, 9).
		AddRow(3, 7, "A3", "Silver", 150, false, nil)
}

type seatViewEnvelope struct {
	Status string     `json:"status"`
	Data   []SeatView `json:"data"`
}

func TestGetSeatsByShowMarksCallerSeats(t *testing.T) {
	gormDB, mock := newMockDB(t)
	database.DB = gormDB
	app := newShowApp()

	mock.ExpectQuery(`SELECT (.+) FROM "shows"`).WillReturnRows(showRows())
	mock.ExpectQuery(`SELECT (.+) FROM "seats"`).WillReturnRows(seatSnapshotRows())

	req := httptest.NewRequest(http.MethodGet, "/shows/7/seats", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, 5))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out seatViewEnvelope
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Data, 3)
	assert.True(t, out.Data[0].IsMine)
	assert.False(t, out.Data[1].IsMine) // someone else's seat, owner not revealed
	assert.False(t, out.Data[2].IsMine)
	assert.True(t, out.Data[1].IsBooked)
	assert.NotContains(t, string(body), "userId")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSeatsByShowAnonymous(t *testing.T) {
	gormDB, mock := newMockDB(t)
	database.DB = gormDB
	app := newShowApp()

	mock.ExpectQuery(`SELECT (.+) FROM "shows"`).WillReturnRows(showRows())
	mock.ExpectQuery(`SELECT (.+) FROM "seats"`).WillReturnRows(seatSnapshotRows())

	req := httptest.NewRequest(http.MethodGet, "/shows/7/seats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out seatViewEnvelope
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Data, 3)
	for _, s := range out.Data {
		assert.False(t, s.IsMine)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSeatsByShowRejectsBadId(t *testing.T) {
	app := newShowApp()

	req := httptest.NewRequest(http.MethodGet, "/shows/zero/seats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Id param must be a positive number", out["message"])
}
