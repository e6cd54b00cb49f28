package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hospitalpanel/models"
	"hospitalpanel/services/bill"
	"hospitalpanel/upstream"
	"hospitalpanel/utils"

	"github.com/gin-gonic/gin"
)

// BillHandler exposes the bill workflow over HTTP.
type BillHandler struct {
	Engine *bill.Engine
	API    *upstream.Client
}

// NewBillHandler creates a new BillHandler instance.
func NewBillHandler(engine *bill.Engine, api *upstream.Client) *BillHandler {
	return &BillHandler{Engine: engine, API: api}
}

func billStatus(err error) int {
	switch {
	case errors.Is(err, bill.ErrNoDraft):
		return http.StatusNotFound
	case errors.Is(err, bill.ErrBillConfirmed),
		errors.Is(err, bill.ErrBillNotConfirmed),
		errors.Is(err, bill.ErrIndexOutOfRange),
		errors.Is(err, bill.ErrUnknownField):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// summary is the derived side of a draft; recomputed on every response.
func summary(draft *models.BillDraft) gin.H {
	sub := bill.Subtotal(draft.LineItems)
	return gin.H{
		"subTotal": sub,
		"cgst":     bill.Tax(sub, bill.GSTRate),
		"sgst":     bill.Tax(sub, bill.GSTRate),
		"total":    bill.Total(draft.LineItems),
	}
}

func respondDraft(c *gin.Context, draft *models.BillDraft) {
	c.JSON(http.StatusOK, gin.H{"data": draft, "summary": summary(draft)})
}

// CreateBillHandler starts a draft for a patient, seeding the hospital and
// patient blocks from the upstream lookup.
func (h *BillHandler) CreateBillHandler(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phoneNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := upstream.WithToken(c.Request.Context(), sessionToken(c))
	lookup, err := h.API.GetPatientDetails(ctx, req.PhoneNumber)
	if err != nil {
		utils.JSONError(c, upstreamStatus(err), upstream.Normalize(err), "")
		return
	}
	if len(lookup.PatientHistory) == 0 {
		utils.JSONError(c, http.StatusNotFound, "No patient data found.", "")
		return
	}

	entry := lookup.PatientHistory[0]
	patient := models.BillPatient{
		PatientID:   entry.PatientDetails.PatientID,
		Name:        entry.PatientDetails.Name,
		PhoneNumber: entry.PatientDetails.PhoneNumber,
		Gender:      entry.PatientDetails.Gender,
		Age:         entry.PatientDetails.Age,
	}
	hospital := models.BillHospital{
		Name:     entry.DoctorDetails.Hospital.HospitalName,
		Location: entry.DoctorDetails.Hospital.Location,
	}

	draft, err := h.Engine.CreateDraft(ctx, patient, hospital)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create bill", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": draft, "summary": summary(draft)})
}

// GetBillHandler returns a draft with its derived totals.
func (h *BillHandler) GetBillHandler(c *gin.Context) {
	draft, err := h.Engine.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, billStatus(err), err.Error(), "")
		return
	}
	respondDraft(c, draft)
}

// AddLineItemHandler appends a blank line item.
func (h *BillHandler) AddLineItemHandler(c *gin.Context) {
	draft, err := h.Engine.AddLineItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, billStatus(err), err.Error(), "")
		return
	}
	respondDraft(c, draft)
}

// UpdateLineItemHandler replaces one field of one line item.
func (h *BillHandler) UpdateLineItemHandler(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line item index"})
		return
	}
	var req struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.Engine.UpdateLineItem(c.Request.Context(), c.Param("id"), index, bill.Field(req.Field), req.Value)
	if err != nil {
		utils.JSONError(c, billStatus(err), err.Error(), "")
		return
	}
	respondDraft(c, draft)
}

// RemoveLineItemHandler removes one line item.
func (h *BillHandler) RemoveLineItemHandler(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line item index"})
		return
	}
	draft, err := h.Engine.RemoveLineItem(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		utils.JSONError(c, billStatus(err), err.Error(), "")
		return
	}
	respondDraft(c, draft)
}

// ConfirmBillHandler locks the draft.
func (h *BillHandler) ConfirmBillHandler(c *gin.Context) {
	draft, err := h.Engine.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, billStatus(err), err.Error(), "")
		return
	}
	respondDraft(c, draft)
}

// EditBillHandler unlocks a confirmed draft.
func (h *BillHandler) EditBillHandler(c *gin.Context) {
	draft, err := h.Engine.Edit(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, billStatus(err), err.Error(), "")
		return
	}
	respondDraft(c, draft)
}

// UploadBillHandler renders the confirmed bill and submits it upstream. On
// failure the draft stays confirmed so the operator can retry.
func (h *BillHandler) UploadBillHandler(c *gin.Context) {
	ctx := upstream.WithToken(c.Request.Context(), sessionToken(c))
	if err := h.Engine.Upload(ctx, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, bill.ErrCaptureFailed):
			utils.JSONError(c, http.StatusInternalServerError, "Failed to generate the bill screenshot.", "")
		case errors.Is(err, bill.ErrNoDraft), errors.Is(err, bill.ErrBillNotConfirmed):
			utils.JSONError(c, billStatus(err), err.Error(), "")
		default:
			utils.JSONError(c, upstreamStatus(err), "Failed to upload the bill. Please try again.", upstream.Normalize(err))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill uploaded successfully!"})
}

// sessionToken reads the bearer token the route guard stashed on the context.
func sessionToken(c *gin.Context) string {
	if v, exists := c.Get("authUser"); exists {
		if user, ok := v.(*models.AuthUser); ok {
			return user.Token
		}
	}
	return ""
}
