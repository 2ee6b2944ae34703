package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxidesk/service"
	"taxidesk/storage"
)

// respondError maps the service error taxonomy onto HTTP: missing records are
// 404, rejected input is 400, everything else is treated as a backend being
// unavailable rather than an empty result.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleListVehicles(c *gin.Context) {
	vehicles, err := s.svc.Vehicle().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (s *Server) handleListActiveDrivers(c *gin.Context) {
	drivers, err := s.svc.Driver().List(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (s *Server) handleListAllDrivers(c *gin.Context) {
	drivers, err := s.svc.Driver().List(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

type submitBookingRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Pickup       string `json:"pickup" binding:"required"`
	Drop         string `json:"drop" binding:"required"`
	VehicleType  string `json:"vehicle_type" binding:"required"`
	DateTime     string `json:"date_time"`
	SpecialNotes string `json:"special_notes"`
	PrivacyMode  bool   `json:"privacy_mode"`
}

func (s *Server) handleSubmitBooking(c *gin.Context) {
	var req submitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := s.svc.Booking().Submit(c.Request.Context(), service.SubmitBookingRequest{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Pickup:       req.Pickup,
		Drop:         req.Drop,
		VehicleType:  req.VehicleType,
		DateTime:     req.DateTime,
		SpecialNotes: req.SpecialNotes,
		PrivacyMode:  req.PrivacyMode,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	s.notifier.BookingSubmitted(booking)

	c.JSON(http.StatusCreated, gin.H{
		"booking":       booking,
		"whatsapp_link": s.notifier.WhatsAppLink(booking),
	})
}

func (s *Server) handleListBookings(c *gin.Context) {
	bookings, err := s.svc.Booking().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) handleSetBookingStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.svc.Booking().SetStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

type agreementRequest struct {
	Phone string `json:"phone" binding:"required"`
}

func (s *Server) handleAcceptAgreement(c *gin.Context) {
	var req agreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.svc.Driver().AcceptAgreement(c.Request.Context(), req.Phone); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "driver number not found, please contact admin"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "thank you for pledging to safety"})
}

func (s *Server) handleToggleBan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	banned, err := s.svc.Driver().ToggleBan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banned": banned})
}

type fileComplaintRequest struct {
	DriverID   int64  `json:"driver_id" binding:"required"`
	ReasonType string `json:"reason_type" binding:"required"`
	Details    string `json:"details"`
}

func (s *Server) handleFileComplaint(c *gin.Context) {
	var req fileComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.svc.Complaint().FileComplaint(c.Request.Context(), req.DriverID, req.ReasonType, req.Details)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.DriverBanned {
		s.notifier.DriverAutoBanned(req.DriverID, result.ComplaintCount)
	}

	c.JSON(http.StatusCreated, gin.H{
		"complaint":     result.Complaint,
		"driver_banned": result.DriverBanned,
	})
}

func (s *Server) handleListComplaints(c *gin.Context) {
	complaints, err := s.svc.Complaint().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := s.svc.Auth().Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
