package handlers

import (
	"net/http"
	"strconv"

	billrecordRepo "hospitalpanel/database/repository/billrecord"
	"hospitalpanel/upstream"
	"hospitalpanel/utils"

	"github.com/gin-gonic/gin"
)

// AccountsHandler serves the accounts area: patient lookups and archived
// upload receipts.
type AccountsHandler struct {
	Records billrecordRepo.BillRecordRepository
	API     *upstream.Client
}

// NewAccountsHandler creates a new AccountsHandler instance.
func NewAccountsHandler(records billrecordRepo.BillRecordRepository, api *upstream.Client) *AccountsHandler {
	return &AccountsHandler{Records: records, API: api}
}

// GetPatientDetailsHandler proxies the upstream patient lookup used to seed a
// bill's display blocks.
func (h *AccountsHandler) GetPatientDetailsHandler(c *gin.Context) {
	phoneNumber := c.Query("phoneNumber")
	if phoneNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phoneNumber is required"})
		return
	}

	ctx := upstream.WithToken(c.Request.Context(), sessionToken(c))
	lookup, err := h.API.GetPatientDetails(ctx, phoneNumber)
	if err != nil {
		utils.JSONError(c, upstreamStatus(err), upstream.Normalize(err), "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": lookup})
}

// ListBillRecordsHandler lists archived upload receipts, optionally filtered
// by patient.
func (h *AccountsHandler) ListBillRecordsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	if patientID := c.Query("patientId"); patientID != "" {
		records, err := h.Records.ListByPatientID(ctx, patientID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list bill records", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": records})
		return
	}

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	records, err := h.Records.ListRecent(ctx, limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bill records", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}
