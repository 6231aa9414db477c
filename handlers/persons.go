package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"relocation-admin-api/backend"
	"relocation-admin-api/config"
	"relocation-admin-api/models"
)

// ListCustomers returns active (non-archived) customers.
func ListCustomers(c *gin.Context) {
	persons, err := config.Backend.PersonsByRole(c.Request.Context(), models.RoleCustomer)
	if err != nil {
		respondBackendError(c, err, "Failed to load customers")
		return
	}
	// The by-role endpoint may include archived records; active listings
	// exclude them.
	active := make([]models.Person, 0, len(persons))
	for _, p := range persons {
		if !p.Archived {
			active = append(active, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(active), "customers": active})
}

// ListArchivedCustomers returns soft-deleted customers only.
func ListArchivedCustomers(c *gin.Context) {
	persons, err := config.Backend.ArchivedCustomers(c.Request.Context())
	if err != nil {
		respondBackendError(c, err, "Failed to load archived customers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(persons), "customers": persons})
}

// ListConsultants returns every consultant.
func ListConsultants(c *gin.Context) {
	persons, err := config.Backend.PersonsByRole(c.Request.Context(), models.RoleConsultant)
	if err != nil {
		respondBackendError(c, err, "Failed to load consultants")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(persons), "consultants": persons})
}

// PersonRequest mirrors the new-customer form's format checks: RFC-simple
// email, digits-only phone with optional leading +.
type PersonRequest struct {
	FirstName   string            `json:"firstName" binding:"required"`
	LastName    string            `json:"lastName" binding:"required"`
	Email       string            `json:"email" binding:"required,email"`
	PhoneNumber string            `json:"phoneNumber" binding:"required,phone"`
	Address     string            `json:"address" binding:"required"`
	PersonRole  models.PersonRole `json:"personRole" binding:"required,oneof=CUSTOMER CONSULTANT"`
}

func (r PersonRequest) payload() backend.PersonPayload {
	return backend.PersonPayload{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		PersonRole:  r.PersonRole,
	}
}

// CreatePerson creates a customer or consultant record.
func CreatePerson(c *gin.Context) {
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	person, err := config.Backend.CreatePerson(c.Request.Context(), req.payload())
	if err != nil {
		respondBackendError(c, err, "Failed to create person")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Person created successfully", "person": person})
}

// UpdatePerson replaces a person's editable fields.
func UpdatePerson(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid person id"})
		return
	}
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	person, err := config.Backend.UpdatePerson(c.Request.Context(), id, req.payload())
	if err != nil {
		respondBackendError(c, err, "Failed to update person")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Person updated successfully", "person": person})
}

// ArchiveCustomer soft-deletes a customer: it disappears from active
// listings but stays retrievable from the archived list.
func ArchiveCustomer(c *gin.Context) {
	setArchived(c, true, "Customer archived")
}

// RestoreCustomer reverses an archive exactly.
func RestoreCustomer(c *gin.Context) {
	setArchived(c, false, "Customer restored")
}

func setArchived(c *gin.Context, archived bool, message string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid person id"})
		return
	}
	person, err := config.Backend.SetArchived(c.Request.Context(), id, archived)
	if err != nil {
		respondBackendError(c, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "person": person})
}
