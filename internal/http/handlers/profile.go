package handlers

import (
	"net/http"

	"boardinghouse-backend/internal/domain/models"
	"boardinghouse-backend/internal/http/middleware"
	"boardinghouse-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

func profileRepo() repositories.ProfileRepository {
	return repositories.ProfileRepository{}
}

// GET /api/me/profile
func GetMyProfile(c *gin.Context) {
	p, err := profileRepo().GetByID(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// PUT /api/me/profile
func UpdateMyProfile(c *gin.Context) {
	var body struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
	}
	if !BindJSONOrError(c, &body) {
		return
	}

	userID := middleware.GetUserID(c)
	if err := profileRepo().Update(models.Profile{ID: userID, FullName: body.FullName, Phone: body.Phone}); err != nil {
		RespondDomainError(c, err)
		return
	}

	p, err := profileRepo().GetByID(userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// GET /api/me/payments
func MyPayments(c *gin.Context) {
	repo := repositories.PaymentRepository{}
	out, err := repo.ListByProfile(middleware.GetUserID(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load payments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": out})
}

// GET /api/me/tenancies
func MyTenancies(c *gin.Context) {
	repo := repositories.TenantRepository{}
	out, err := repo.ListByProfile(middleware.GetUserID(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load tenancies", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenancies": out})
}
