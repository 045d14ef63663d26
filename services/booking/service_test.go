package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"skyward/models"
	"skyward/services/amadeus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Add(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMirrorRepository struct {
	mock.Mock
}

func (m *MockMirrorRepository) Add(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockMirrorRepository) Update(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockAmadeusService struct {
	mock.Mock
}

func (m *MockAmadeusService) SearchFlights(ctx context.Context, req models.FlightSearchRequest) ([]models.FlightOffer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlightOffer), args.Error(1)
}

func (m *MockAmadeusService) ConfirmBooking(rawOfferJSON string, passengers []models.Passenger) (*models.BookingConfirmation, error) {
	args := m.Called(rawOfferJSON, passengers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingConfirmation), args.Error(1)
}

func (m *MockAmadeusService) CancelBooking(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

type MockOfferCache struct {
	mock.Mock
}

func (m *MockOfferCache) Get(ctx context.Context, req models.FlightSearchRequest) ([]models.FlightOffer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlightOffer), args.Error(1)
}

func (m *MockOfferCache) Set(ctx context.Context, req models.FlightSearchRequest, offers []models.FlightOffer) error {
	args := m.Called(ctx, req, offers)
	return args.Error(0)
}

const validOfferJSON = `{"id":"OFF1","price":{"grandTotal":"123.45"}}`

func newService(primary *MockBookingRepository, mirror *MockMirrorRepository, provider *MockAmadeusService) *DefaultBookingService {
	return &DefaultBookingService{
		Primary: primary,
		Mirror:  mirror,
		Amadeus: provider,
		Logger:  zap.NewNop(),
	}
}

func validBookRequest() models.BookFlightRequest {
	return models.BookFlightRequest{
		UserID: "u1",
		Passengers: []models.PassengerInput{{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
			Email:       "ada@example.com",
			PhoneNumber: "555-0100",
		}},
		FlightOfferJSON: validOfferJSON,
	}
}

func confirmationFixture() *models.BookingConfirmation {
	return &models.BookingConfirmation{
		BookingID:         "b-1",
		ProviderReference: "ABC123",
		Status:            models.StatusConfirmed,
		TotalPrice:        123.45,
		BookingDate:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateBooking_Success(t *testing.T) {
	primary := &MockBookingRepository{}
	mirror := &MockMirrorRepository{}
	provider := &MockAmadeusService{}
	service := newService(primary, mirror, provider)

	ctx := context.Background()
	conf := confirmationFixture()

	provider.On("ConfirmBooking", validOfferJSON, mock.AnythingOfType("[]models.Passenger")).Return(conf, nil).Once()
	primary.On("Add", ctx, mock.MatchedBy(func(b *models.Booking) bool {
		return b.ID == "b-1" &&
			b.UserID == "u1" &&
			b.FlightID == "OFF1" &&
			len(b.Passengers) == 1 &&
			b.Passengers[0].FirstName == "Ada" &&
			b.TotalPrice == 123.45 &&
			b.Status == models.StatusConfirmed &&
			b.ProviderReference == "ABC123"
	})).Return(nil).Once()
	mirror.On("Add", ctx, mock.AnythingOfType("*models.Booking")).Return(nil).Once()

	result, err := service.CreateBooking(ctx, validBookRequest())

	assert.NoError(t, err)
	assert.Equal(t, conf, result)
	primary.AssertExpectations(t)
	mirror.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestCreateBooking_MirrorFailureStillSucceeds(t *testing.T) {
	primary := &MockBookingRepository{}
	mirror := &MockMirrorRepository{}
	provider := &MockAmadeusService{}
	service := newService(primary, mirror, provider)

	ctx := context.Background()
	conf := confirmationFixture()

	provider.On("ConfirmBooking", validOfferJSON, mock.Anything).Return(conf, nil).Once()
	primary.On("Add", ctx, mock.AnythingOfType("*models.Booking")).Return(nil).Once()
	mirror.On("Add", ctx, mock.AnythingOfType("*models.Booking")).Return(errors.New("mongo down")).Once()

	result, err := service.CreateBooking(ctx, validBookRequest())

	assert.NoError(t, err)
	assert.Equal(t, conf, result)
	mirror.AssertExpectations(t)
}

func TestCreateBooking_PrimaryFailureAbortsBeforeMirror(t *testing.T) {
	primary := &MockBookingRepository{}
	mirror := &MockMirrorRepository{}
	provider := &MockAmadeusService{}
	service := newService(primary, mirror, provider)

	ctx := context.Background()

	provider.On("ConfirmBooking", validOfferJSON, mock.Anything).Return(confirmationFixture(), nil).Once()
	primary.On("Add", ctx, mock.AnythingOfType("*models.Booking")).Return(errors.New("firestore down")).Once()

	result, err := service.CreateBooking(ctx, validBookRequest())

	assert.Nil(t, result)
	var storeErr *PrimaryStoreError
	assert.ErrorAs(t, err, &storeErr)
	mirror.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateBooking_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.BookFlightRequest)
		message string
	}{
		{
			name: "blank offer wins over everything",
			mutate: func(r *models.BookFlightRequest) {
				r.FlightOfferJSON = "   "
				r.Passengers = nil
				r.UserID = ""
			},
			message: "flight offer JSON is required",
		},
		{
			name: "no passengers",
			mutate: func(r *models.BookFlightRequest) {
				r.Passengers = nil
				r.UserID = ""
			},
			message: "at least one passenger is required for booking",
		},
		{
			name: "blank user id",
			mutate: func(r *models.BookFlightRequest) {
				r.UserID = "  "
			},
			message: "user ID is required for booking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &MockBookingRepository{}
			mirror := &MockMirrorRepository{}
			provider := &MockAmadeusService{}
			service := newService(primary, mirror, provider)

			req := validBookRequest()
			tt.mutate(&req)

			result, err := service.CreateBooking(context.Background(), req)

			assert.Nil(t, result)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.message, validationErr.Message)
			provider.AssertNotCalled(t, "ConfirmBooking", mock.Anything, mock.Anything)
			primary.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateBooking_MalformedOffer(t *testing.T) {
	primary := &MockBookingRepository{}
	mirror := &MockMirrorRepository{}
	provider := &MockAmadeusService{}
	service := newService(primary, mirror, provider)

	req := validBookRequest()
	req.FlightOfferJSON = `{"id":"OFF1"}`

	result, err := service.CreateBooking(context.Background(), req)

	assert.Nil(t, result)
	var offerErr *amadeus.MalformedOfferError
	assert.ErrorAs(t, err, &offerErr)
	provider.AssertNotCalled(t, "ConfirmBooking", mock.Anything, mock.Anything)
	primary.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestGetBookingDetails_Found(t *testing.T) {
	primary := &MockBookingRepository{}
	service := newService(primary, &MockMirrorRepository{}, &MockAmadeusService{})

	ctx := context.Background()
	stored := &models.Booking{
		ID:                "b-1",
		UserID:            "u1",
		TotalPrice:        99.90,
		BookingDate:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Status:            models.StatusConfirmed,
		ProviderReference: "ABC123",
	}
	primary.On("GetByID", ctx, "b-1").Return(stored, nil).Once()

	result, err := service.GetBookingDetails(ctx, "b-1")

	assert.NoError(t, err)
	assert.Equal(t, "b-1", result.BookingID)
	assert.Equal(t, "ABC123", result.ProviderReference)
	assert.Equal(t, models.StatusConfirmed, result.Status)
	assert.Equal(t, 99.90, result.TotalPrice)
}

func TestGetBookingDetails_AbsentIsNotAnError(t *testing.T) {
	primary := &MockBookingRepository{}
	service := newService(primary, &MockMirrorRepository{}, &MockAmadeusService{})

	primary.On("GetByID", mock.Anything, "missing").Return(nil, nil).Once()

	result, err := service.GetBookingDetails(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestGetBookingDetails_StoreFailure(t *testing.T) {
	primary := &MockBookingRepository{}
	service := newService(primary, &MockMirrorRepository{}, &MockAmadeusService{})

	primary.On("GetByID", mock.Anything, "b-1").Return(nil, errors.New("firestore down")).Once()

	result, err := service.GetBookingDetails(context.Background(), "b-1")

	assert.Nil(t, result)
	var storeErr *PrimaryStoreError
	assert.ErrorAs(t, err, &storeErr)
}

func storedBooking(status, reference string) *models.Booking {
	return &models.Booking{
		ID:                "b-1",
		UserID:            "u1",
		Status:            status,
		ProviderReference: reference,
	}
}

func TestCancelBooking_NotFound(t *testing.T) {
	primary := &MockBookingRepository{}
	provider := &MockAmadeusService{}
	service := newService(primary, &MockMirrorRepository{}, provider)

	primary.On("GetByID", mock.Anything, "missing").Return(nil, nil).Once()

	cancelled, err := service.CancelBooking(context.Background(), "missing")

	assert.False(t, cancelled)
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	provider.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	primary := &MockBookingRepository{}
	provider := &MockAmadeusService{}
	service := newService(primary, &MockMirrorRepository{}, provider)

	primary.On("GetByID", mock.Anything, "b-1").Return(storedBooking(models.StatusCancelled, "ABC123"), nil).Once()

	cancelled, err := service.CancelBooking(context.Background(), "b-1")

	assert.False(t, cancelled)
	var cancelledErr *AlreadyCancelledError
	assert.ErrorAs(t, err, &cancelledErr)
	provider.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything)
}

func TestCancelBooking_MissingReference(t *testing.T) {
	primary := &MockBookingRepository{}
	provider := &MockAmadeusService{}
	service := newService(primary, &MockMirrorRepository{}, provider)

	primary.On("GetByID", mock.Anything, "b-1").Return(storedBooking(models.StatusConfirmed, ""), nil).Once()

	cancelled, err := service.CancelBooking(context.Background(), "b-1")

	assert.False(t, cancelled)
	var referenceErr *MissingReferenceError
	assert.ErrorAs(t, err, &referenceErr)
	provider.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything)
}

func TestCancelBooking_ProviderFailureLeavesRecordUntouched(t *testing.T) {
	primary := &MockBookingRepository{}
	mirror := &MockMirrorRepository{}
	provider := &MockAmadeusService{}
	service := newService(primary, mirror, provider)

	stored := storedBooking(models.StatusConfirmed, "ABC123")
	primary.On("GetByID", mock.Anything, "b-1").Return(stored, nil).Once()
	provider.On("CancelBooking", mock.Anything, "ABC123").
		Return(false, &amadeus.ProviderError{Op: "cancel", StatusCode: 500, Body: "boom"}).Once()

	cancelled, err := service.CancelBooking(context.Background(), "b-1")

	assert.False(t, cancelled)
	var providerErr *amadeus.ProviderError
	assert.ErrorAs(t, err, &providerErr)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
	primary.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mirror.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelBooking_ProviderDeclined(t *testing.T) {
	primary := &MockBookingRepository{}
	mirror := &MockMirrorRepository{}
	provider := &MockAmadeusService{}
	service := newService(primary, mirror, provider)

	stored := storedBooking(models.StatusConfirmed, "ABC123")
	primary.On("GetByID", mock.Anything, "b-1").Return(stored, nil).Once()
	provider.On("CancelBooking", mock.Anything, "ABC123").Return(false, nil).Once()

	cancelled, err := service.CancelBooking(context.Background(), "b-1")

	assert.False(t, cancelled)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
	primary.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mirror.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelBooking_Success(t *testing.T) {
	primary := &MockBookingRepository{}
	mirror := &MockMirrorRepository{}
	provider := &MockAmadeusService{}
	service := newService(primary, mirror, provider)

	stored := storedBooking(models.StatusConfirmed, "ABC123")
	primary.On("GetByID", mock.Anything, "b-1").Return(stored, nil).Once()
	provider.On("CancelBooking", mock.Anything, "ABC123").Return(true, nil).Once()
	primary.On("Update", mock.Anything, stored).Return(nil).Once()
	mirror.On("Update", mock.Anything, stored).Return(nil).Once()

	cancelled, err := service.CancelBooking(context.Background(), "b-1")

	assert.True(t, cancelled)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	primary.AssertExpectations(t)
	mirror.AssertExpectations(t)
}

func TestCancelBooking_StoreUpdateFailuresAreSwallowed(t *testing.T) {
	primary := &MockBookingRepository{}
	mirror := &MockMirrorRepository{}
	provider := &MockAmadeusService{}
	service := newService(primary, mirror, provider)

	stored := storedBooking(models.StatusConfirmed, "ABC123")
	primary.On("GetByID", mock.Anything, "b-1").Return(stored, nil).Once()
	provider.On("CancelBooking", mock.Anything, "ABC123").Return(true, nil).Once()
	primary.On("Update", mock.Anything, stored).Return(errors.New("firestore down")).Once()
	mirror.On("Update", mock.Anything, stored).Return(errors.New("mongo down")).Once()

	cancelled, err := service.CancelBooking(context.Background(), "b-1")

	assert.True(t, cancelled)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	primary.AssertExpectations(t)
	mirror.AssertExpectations(t)
}

func TestSearchFlights_CacheHitSkipsProvider(t *testing.T) {
	provider := &MockAmadeusService{}
	cache := &MockOfferCache{}
	service := newService(&MockBookingRepository{}, &MockMirrorRepository{}, provider)
	service.Offers = cache

	req := models.FlightSearchRequest{OriginLocationCode: "LHR", DestinationLocationCode: "JFK", DepartureDate: "2026-09-01", Adults: 1}
	cachedOffers := []models.FlightOffer{{ID: "OFF1", Price: 123.45}}
	cache.On("Get", mock.Anything, req).Return(cachedOffers, nil).Once()

	offers, err := service.SearchFlights(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, cachedOffers, offers)
	provider.AssertNotCalled(t, "SearchFlights", mock.Anything, mock.Anything)
}

func TestSearchFlights_CacheMissFillsCache(t *testing.T) {
	provider := &MockAmadeusService{}
	cache := &MockOfferCache{}
	service := newService(&MockBookingRepository{}, &MockMirrorRepository{}, provider)
	service.Offers = cache

	req := models.FlightSearchRequest{OriginLocationCode: "LHR", DestinationLocationCode: "JFK", DepartureDate: "2026-09-01", Adults: 1}
	fresh := []models.FlightOffer{{ID: "OFF2", Price: 200}}
	cache.On("Get", mock.Anything, req).Return(nil, nil).Once()
	provider.On("SearchFlights", mock.Anything, req).Return(fresh, nil).Once()
	cache.On("Set", mock.Anything, req, fresh).Return(nil).Once()

	offers, err := service.SearchFlights(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, fresh, offers)
	cache.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestSearchFlights_CacheFailureFallsThrough(t *testing.T) {
	provider := &MockAmadeusService{}
	cache := &MockOfferCache{}
	service := newService(&MockBookingRepository{}, &MockMirrorRepository{}, provider)
	service.Offers = cache

	req := models.FlightSearchRequest{OriginLocationCode: "LHR", DestinationLocationCode: "JFK", DepartureDate: "2026-09-01", Adults: 1}
	fresh := []models.FlightOffer{{ID: "OFF3"}}
	cache.On("Get", mock.Anything, req).Return(nil, errors.New("redis down")).Once()
	provider.On("SearchFlights", mock.Anything, req).Return(fresh, nil).Once()
	cache.On("Set", mock.Anything, req, fresh).Return(errors.New("redis down")).Once()

	offers, err := service.SearchFlights(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, fresh, offers)
}
