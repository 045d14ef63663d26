package handlers

import (
	"net/http"
	"time"

	bookingRepo "skyward/database/repository/booking"
	"skyward/models"
	"skyward/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreHealthHandler probes both booking stores with a throwaway record so
// operators can tell which store is failing.
type StoreHealthHandler struct {
	Primary bookingRepo.BookingRepository
	Mirror  bookingRepo.BookingMirrorRepository
	Logger  *zap.Logger
}

func NewStoreHealthHandler(primary bookingRepo.BookingRepository, mirror bookingRepo.BookingMirrorRepository, logger *zap.Logger) *StoreHealthHandler {
	return &StoreHealthHandler{Primary: primary, Mirror: mirror, Logger: logger}
}

type storeProbeRequest struct {
	Message string `json:"message"`
	Source  string `json:"source"`
}

// CheckStores handles POST /api/health/stores. It writes a probe booking to
// the primary store, then the mirror, reports the first failure, and cleans
// the probe out of the primary store afterwards.
func (h *StoreHealthHandler) CheckStores(c *gin.Context) {
	var req storeProbeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid probe request", err.Error())
		return
	}

	probe := &models.Booking{
		ID:       uuid.NewString(),
		UserID:   "HEALTH_PROBE",
		FlightID: "HEALTH_PROBE",
		Passengers: []models.Passenger{{
			FirstName:   "Probe",
			LastName:    "User",
			DateOfBirth: time.Now().UTC().AddDate(-30, 0, 0),
			Email:       "probe@example.com",
			PhoneNumber: "0000000000",
		}},
		TotalPrice:        0,
		BookingDate:       time.Now().UTC(),
		Status:            req.Source,
		ProviderReference: req.Message,
	}

	ctx := c.Request.Context()

	if err := h.Primary.Add(ctx, probe); err != nil {
		h.Logger.Error("Store health probe failed on primary store.", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"store": "primary", "error": err.Error()})
		return
	}

	if err := h.Mirror.Add(ctx, probe); err != nil {
		h.Logger.Error("Store health probe failed on mirror store.", zap.Error(err))
		// The primary probe doc is removed even when the mirror fails.
		if delErr := h.Primary.Delete(ctx, probe.ID); delErr != nil {
			h.Logger.Warn("Failed to clean up health probe record.", zap.Error(delErr))
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"store": "mirror", "error": err.Error()})
		return
	}

	if err := h.Primary.Delete(ctx, probe.ID); err != nil {
		h.Logger.Warn("Failed to clean up health probe record.", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "probeId": probe.ID})
}
