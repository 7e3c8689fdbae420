//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"scenario-booking/internal/domain/reservation"
	"scenario-booking/internal/handler/api"
	"scenario-booking/internal/pkg/errs"
	"scenario-booking/internal/usecase"
)

// reservationUseCaseStub satisfies usecase.ReservationUseCase with canned
// responses per method.
type reservationUseCaseStub struct {
	createFn  func(ctx context.Context, params usecase.CreateReservationParams) (*reservation.Reservation, error)
	getFn     func(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	approveFn func(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	rejectFn  func(ctx context.Context, id uuid.UUID, reason string) (*reservation.Reservation, error)
	cancelFn  func(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
}

func (s *reservationUseCaseStub) Create(ctx context.Context, params usecase.CreateReservationParams) (*reservation.Reservation, error) {
	return s.createFn(ctx, params)
}

func (s *reservationUseCaseStub) Get(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return s.getFn(ctx, id)
}

func (s *reservationUseCaseStub) Approve(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return s.approveFn(ctx, id)
}

func (s *reservationUseCaseStub) Reject(ctx context.Context, id uuid.UUID, reason string) (*reservation.Reservation, error) {
	return s.rejectFn(ctx, id, reason)
}

func (s *reservationUseCaseStub) Cancel(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return s.cancelFn(ctx, id)
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	stub   *reservationUseCaseStub
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.stub = &reservationUseCaseStub{}

	h := api.NewReservationHandler(s.stub)
	s.router.POST("/reservations", h.Create)
	s.router.GET("/reservations/:id", h.Get)
	s.router.POST("/reservations/:id/approve", h.Approve)
	s.router.POST("/reservations/:id/reject", h.Reject)
	s.router.POST("/reservations/:id/cancel", h.Cancel)
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func sampleReservation(s *suite.Suite) *reservation.Reservation {
	start := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	slot, err := reservation.NewTimeSlot(start, start.Add(2*time.Hour))
	s.Require().NoError(err)
	return reservation.NewReservation(uuid.New(), uuid.New(), slot, nil, start)
}

func validCreateBody() map[string]any {
	return map[string]any{
		"scenario_id":  uuid.New().String(),
		"requester_id": uuid.New().String(),
		"start_time":   "2026-03-11T10:00:00Z",
		"end_time":     "2026-03-11T12:00:00Z",
	}
}

func (s *ReservationHandlerTestSuite) TestCreate() {
	s.Run("returns 201 for a valid request", func() {
		res := sampleReservation(&s.Suite)
		s.stub.createFn = func(_ context.Context, _ usecase.CreateReservationParams) (*reservation.Reservation, error) {
			return res, nil
		}

		rec := s.perform(http.MethodPost, "/reservations", validCreateBody())
		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), res.ID().String())
		s.Contains(rec.Body.String(), `"status":"pending"`)
	})

	s.Run("returns 400 when required fields are missing", func() {
		body := validCreateBody()
		delete(body, "start_time")
		rec := s.perform(http.MethodPost, "/reservations", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("returns 404 for an unknown scenario", func() {
		s.stub.createFn = func(_ context.Context, _ usecase.CreateReservationParams) (*reservation.Reservation, error) {
			return nil, errs.ErrScenarioNotFound
		}
		rec := s.perform(http.MethodPost, "/reservations", validCreateBody())
		s.Equal(http.StatusNotFound, rec.Code)
		s.Contains(rec.Body.String(), `"message":"Scenario not found"`)
	})

	s.Run("returns 409 on a window conflict", func() {
		s.stub.createFn = func(_ context.Context, _ usecase.CreateReservationParams) (*reservation.Reservation, error) {
			return nil, errs.ErrReservationConflict
		}
		rec := s.perform(http.MethodPost, "/reservations", validCreateBody())
		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), `"message":"Time window is already reserved"`)
	})

	s.Run("returns 400 on an inverted window", func() {
		s.stub.createFn = func(_ context.Context, _ usecase.CreateReservationParams) (*reservation.Reservation, error) {
			return nil, errs.ErrInvalidWindow
		}
		rec := s.perform(http.MethodPost, "/reservations", validCreateBody())
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestGet() {
	s.Run("returns 200 for a known reservation", func() {
		res := sampleReservation(&s.Suite)
		s.stub.getFn = func(_ context.Context, _ uuid.UUID) (*reservation.Reservation, error) {
			return res, nil
		}
		rec := s.perform(http.MethodGet, "/reservations/"+res.ID().String(), nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("returns 400 for a malformed id", func() {
		rec := s.perform(http.MethodGet, "/reservations/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), `"message":"Invalid id"`)
	})

	s.Run("returns 404 for an unknown reservation", func() {
		s.stub.getFn = func(_ context.Context, _ uuid.UUID) (*reservation.Reservation, error) {
			return nil, errs.ErrReservationNotFound
		}
		rec := s.perform(http.MethodGet, "/reservations/"+uuid.NewString(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestTransitions() {
	s.Run("approve returns 200", func() {
		res := sampleReservation(&s.Suite)
		s.stub.approveFn = func(_ context.Context, _ uuid.UUID) (*reservation.Reservation, error) {
			return res, nil
		}
		rec := s.perform(http.MethodPost, "/reservations/"+res.ID().String()+"/approve", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("invalid transition returns 422", func() {
		s.stub.approveFn = func(_ context.Context, _ uuid.UUID) (*reservation.Reservation, error) {
			return nil, errs.ErrInvalidStateTransition
		}
		rec := s.perform(http.MethodPost, "/reservations/"+uuid.NewString()+"/approve", nil)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.Contains(rec.Body.String(), `"message":"Reservation status does not allow this transition"`)
	})

	s.Run("reject requires a reason", func() {
		rec := s.perform(http.MethodPost, "/reservations/"+uuid.NewString()+"/reject", map[string]any{})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("reject passes the reason through", func() {
		res := sampleReservation(&s.Suite)
		var gotReason string
		s.stub.rejectFn = func(_ context.Context, _ uuid.UUID, reason string) (*reservation.Reservation, error) {
			gotReason = reason
			return res, nil
		}
		rec := s.perform(http.MethodPost, "/reservations/"+res.ID().String()+"/reject",
			map[string]any{"reason": "maintenance"})
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("maintenance", gotReason)
	})

	s.Run("cancel returns 200", func() {
		res := sampleReservation(&s.Suite)
		s.stub.cancelFn = func(_ context.Context, _ uuid.UUID) (*reservation.Reservation, error) {
			return res, nil
		}
		rec := s.perform(http.MethodPost, "/reservations/"+res.ID().String()+"/cancel", nil)
		s.Equal(http.StatusOK, rec.Code)
	})
}
