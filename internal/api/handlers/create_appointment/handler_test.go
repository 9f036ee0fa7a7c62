package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createAppointment "github.com/m04kA/SMC-GarageService/internal/usecase/create_appointment"
)

type fakeUseCase struct {
	resp *createAppointment.Response
	err  error
}

func (uc *fakeUseCase) Execute(_ context.Context, _ *createAppointment.Request) (*createAppointment.Response, error) {
	return uc.resp, uc.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"clientName": "Alice Brown",
	"clientPhone": "+15550001111",
	"clientAddress": "12 Main St",
	"carLicense": "ABC-123",
	"carEngine": "ENG-777",
	"appointmentDate": "2026-09-10",
	"mechanicId": 1
}`

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createAppointment.Response{
		ID:              1,
		MechanicID:      1,
		MechanicName:    "John Smith",
		ClientName:      "Alice Brown",
		AppointmentDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:          "confirmed",
		SlotUpdate: createAppointment.SlotUpdateInfo{
			MechanicID:             1,
			MechanicName:           "John Smith",
			PreviousAvailableSlots: 4,
			CurrentAvailableSlots:  3,
			TotalSlots:             4,
			SlotChange:             -1,
		},
	}}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "2026-09-10", resp.AppointmentDate)
	assert.Equal(t, 3, resp.SlotUpdate.AvailableSlots)
	assert.Equal(t, -1, resp.SlotUpdate.SlotChange)
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, `{"clientName": }`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MechanicNotFound(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{err: createAppointment.ErrMechanicNotFound}, validBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_InvalidDate(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{err: createAppointment.ErrInvalidDate}, validBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_DuplicateBookingConflict(t *testing.T) {
	uc := &fakeUseCase{err: &createAppointment.DuplicateBookingError{
		ClientName: "Alice Brown",
		MechanicID: 2,
		Date:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	}}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.ExistingDate)
	assert.Equal(t, "2026-09-10", *resp.ExistingDate)
}

func TestHandle_FullyBookedConflict(t *testing.T) {
	uc := &fakeUseCase{err: &createAppointment.FullyBookedError{
		MechanicName:   "John Smith",
		AvailableSlots: 0,
		TotalSlots:     4,
	}}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.MechanicName)
	assert.Equal(t, "John Smith", *resp.MechanicName)
	require.NotNil(t, resp.AvailableSlots)
	assert.Equal(t, 0, *resp.AvailableSlots)
}

func TestHandle_InternalError(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{err: createAppointment.ErrStorage}, validBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
