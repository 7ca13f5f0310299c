package handlers

import (
	"net/http"
	"strconv"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
	"boardinghouse-backend/internal/http/middleware"
	"boardinghouse-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/rooms?status=Available
func ListRooms(c *gin.Context) {
	status := domain.RoomStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		respondError(c, http.StatusBadRequest, "validation_error", "unknown room status", nil)
		return
	}

	repo := repositories.RoomRepository{}
	rooms, err := repo.List(status)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load rooms", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// GET /api/rooms/:id
func GetRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid room id", nil)
		return
	}

	repo := repositories.RoomRepository{}
	room, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

type roomPayload struct {
	RoomNumber   string   `json:"room_number"`
	Capacity     string   `json:"capacity"`
	RentalTerm   string   `json:"rental_term"`
	PriceMonthly *float64 `json:"price_monthly"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	ImageURLs    []string `json:"image_urls"`
}

func (p roomPayload) validate() error {
	if p.RoomNumber == "" {
		return domain.ValidationError{Field: "room_number", Msg: "required"}
	}
	if p.PriceMonthly == nil || *p.PriceMonthly <= 0 {
		return domain.ValidationError{Field: "price_monthly", Msg: "must be positive"}
	}
	if len(p.ImageURLs) > 5 {
		return domain.ValidationError{Field: "image_urls", Msg: "maximum 5 images allowed"}
	}
	if p.Status != "" && !domain.RoomStatus(p.Status).Valid() {
		return domain.ValidationError{Field: "status", Msg: "unknown room status"}
	}
	return nil
}

// POST /api/admin/rooms
func CreateRoom(c *gin.Context) {
	var body roomPayload
	if !BindJSONOrError(c, &body) {
		return
	}
	if err := body.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	status := domain.RoomStatus(body.Status)
	if status == "" {
		status = domain.RoomAvailable
	}

	repo := repositories.RoomRepository{}
	id, err := repo.Create(models.Room{
		RoomNumber:   body.RoomNumber,
		Capacity:     body.Capacity,
		RentalTerm:   body.RentalTerm,
		PriceMonthly: *body.PriceMonthly,
		Description:  body.Description,
		Status:       status,
		ImageURLs:    body.ImageURLs,
		CreatedBy:    middleware.GetUserID(c),
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save room", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/admin/rooms/:id
func UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid room id", nil)
		return
	}

	var body roomPayload
	if !BindJSONOrError(c, &body) {
		return
	}
	if err := body.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.RoomRepository{}
	existing, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	status := domain.RoomStatus(body.Status)
	if status == "" {
		status = existing.Status
	}

	if err := repo.Update(models.Room{
		ID:           id,
		RoomNumber:   body.RoomNumber,
		Capacity:     body.Capacity,
		RentalTerm:   body.RentalTerm,
		PriceMonthly: *body.PriceMonthly,
		Description:  body.Description,
		Status:       status,
		ImageURLs:    body.ImageURLs,
	}); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update room", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "room updated"})
}

// DELETE /api/admin/rooms/:id
func DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid room id", nil)
		return
	}

	repo := repositories.RoomRepository{}
	room, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	removeStoredImages(room.ImageURLs)

	if err := repo.Delete(id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete room", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "room deleted"})
}
