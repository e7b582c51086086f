package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rental-api/internal/auth"
	"rental-api/internal/domain"
	"rental-api/internal/repository"
	"rental-api/internal/service"
	"rental-api/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users          service.UserService
	places         service.PlaceService
	bookings       service.BookingService
	tokens         *auth.Manager
	storage        storage.Service
	maxUploadBytes int64
	maxPhotoCount  int
	logger         logrus.FieldLogger
}

func NewHandler(
	users service.UserService,
	places service.PlaceService,
	bookings service.BookingService,
	tokens *auth.Manager,
	store storage.Service,
	maxUploadBytes int64,
	maxPhotoCount int,
	logger logrus.FieldLogger,
) *Handler {
	return &Handler{
		users:          users,
		places:         places,
		bookings:       bookings,
		tokens:         tokens,
		storage:        store,
		maxUploadBytes: maxUploadBytes,
		maxPhotoCount:  maxPhotoCount,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.GET("/profile", h.requireAuth(), h.profile)

	router.POST("/upload", h.requireAuth(), h.upload)
	router.POST("/upload-by-link", h.requireAuth(), h.uploadByLink)
	router.GET("/uploads/:name", h.servePhoto)

	router.GET("/places", h.listPlaces)
	router.GET("/places/:id", h.getPlace)
	router.POST("/places", h.requireAuth(), h.createPlace)
	router.PUT("/places", h.requireAuth(), h.updatePlace)
	router.GET("/user-places", h.requireAuth(), h.userPlaces)

	router.GET("/bookings", h.requireAuth(), h.listBookings)
	router.POST("/bookings", h.requireAuth(), h.createBooking)

	router.GET("/api/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		h.logger.Errorf("issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) logout(c *gin.Context) {
	h.clearTokenCookie(c)
	c.JSON(http.StatusOK, true)
}

func (h *Handler) profile(c *gin.Context) {
	claims := mustIdentity(c)

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

type placeRequest struct {
	Title       string   `json:"title" binding:"required"`
	Address     string   `json:"address"`
	AddedPhotos []string `json:"addedPhotos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       int      `json:"price"`
}

func (r placeRequest) toInput() service.PlaceInput {
	return service.PlaceInput{
		Title:       r.Title,
		Address:     r.Address,
		Photos:      r.AddedPhotos,
		Description: r.Description,
		Perks:       r.Perks,
		ExtraInfo:   r.ExtraInfo,
		CheckIn:     r.CheckIn,
		CheckOut:    r.CheckOut,
		MaxGuests:   r.MaxGuests,
		Price:       r.Price,
	}
}

func (h *Handler) createPlace(c *gin.Context) {
	claims := mustIdentity(c)

	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	place, err := h.places.Create(c.Request.Context(), claims.UserID, req.toInput())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, placeToResponse(*place))
}

type updatePlaceRequest struct {
	ID int64 `json:"id" binding:"required"`
	placeRequest
}

func (h *Handler) updatePlace(c *gin.Context) {
	claims := mustIdentity(c)

	var req updatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.places.Update(c.Request.Context(), claims.UserID, req.ID, req.toInput()); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, "ok")
}

func (h *Handler) listPlaces(c *gin.Context) {
	places, err := h.places.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, placesToResponse(places))
}

func (h *Handler) getPlace(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}

	place, err := h.places.Get(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, placeToResponse(*place))
}

func (h *Handler) userPlaces(c *gin.Context) {
	claims := mustIdentity(c)

	places, err := h.places.ListByOwner(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, placesToResponse(places))
}

type bookingRequest struct {
	Place          int64  `json:"place" binding:"required"`
	CheckIn        string `json:"checkIn" binding:"required"`
	CheckOut       string `json:"checkOut" binding:"required"`
	NumberOfGuests int    `json:"numberOfGuests"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Price          int    `json:"price"`
}

func (h *Handler) createBooking(c *gin.Context) {
	claims := mustIdentity(c)

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkIn date"})
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkOut date"})
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), claims.UserID, service.BookingInput{
		PlaceID:        req.Place,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: req.NumberOfGuests,
		Name:           req.Name,
		Phone:          req.Phone,
		Price:          req.Price,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookingToResponse(*booking))
}

func (h *Handler) listBookings(c *gin.Context) {
	claims := mustIdentity(c)

	bookings, err := h.bookings.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = bookingToResponse(bookings[i])
	}
	c.JSON(http.StatusOK, resp)
}

// writeServiceError maps service and repository sentinels to status
// codes; anything unrecognized is logged and hidden behind a generic 500.
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseDate accepts both bare dates from date inputs and full RFC3339
// timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

type PlaceResponse struct {
	ID          int64    `json:"id"`
	Owner       int64    `json:"owner"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Photos      []string `json:"photos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       int      `json:"price"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func placeToResponse(place domain.Place) PlaceResponse {
	return PlaceResponse{
		ID:          place.ID,
		Owner:       place.OwnerID,
		Title:       place.Title,
		Address:     place.Address,
		Photos:      place.Photos,
		Description: place.Description,
		Perks:       place.Perks,
		ExtraInfo:   place.ExtraInfo,
		CheckIn:     place.CheckIn,
		CheckOut:    place.CheckOut,
		MaxGuests:   place.MaxGuests,
		Price:       place.Price,
		CreatedAt:   place.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   place.UpdatedAt.Format(time.RFC3339),
	}
}

func placesToResponse(places []domain.Place) []PlaceResponse {
	resp := make([]PlaceResponse, len(places))
	for i := range places {
		resp[i] = placeToResponse(places[i])
	}
	return resp
}

type BookingResponse struct {
	ID             int64          `json:"id"`
	Place          int64          `json:"place"`
	User           int64          `json:"user"`
	CheckIn        string         `json:"checkIn"`
	CheckOut       string         `json:"checkOut"`
	NumberOfGuests int            `json:"numberOfGuests"`
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	Price          int            `json:"price"`
	PlaceDoc       *PlaceResponse `json:"placeDoc,omitempty"`
}

func bookingToResponse(booking domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:             booking.ID,
		Place:          booking.PlaceID,
		User:           booking.UserID,
		CheckIn:        booking.CheckIn.Format("2006-01-02"),
		CheckOut:       booking.CheckOut.Format("2006-01-02"),
		NumberOfGuests: booking.NumberOfGuests,
		Name:           booking.Name,
		Phone:          booking.Phone,
		Price:          booking.Price,
	}
	if booking.Place != nil {
		place := placeToResponse(*booking.Place)
		resp.PlaceDoc = &place
	}
	return resp
}
