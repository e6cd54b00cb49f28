package handlers

import (
	"hospitalpanel/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the wired handlers for route registration.
type HandlerBundle struct {
	Codec session.CookieCodec

	// Session endpoints.
	RequestOTPHandler gin.HandlerFunc
	ResendOTPHandler  gin.HandlerFunc
	VerifyOTPHandler  gin.HandlerFunc
	LogoutHandler     gin.HandlerFunc
	MeHandler         gin.HandlerFunc

	// Bill workflow endpoints.
	CreateBillHandler     gin.HandlerFunc
	GetBillHandler        gin.HandlerFunc
	AddLineItemHandler    gin.HandlerFunc
	UpdateLineItemHandler gin.HandlerFunc
	RemoveLineItemHandler gin.HandlerFunc
	ConfirmBillHandler    gin.HandlerFunc
	EditBillHandler       gin.HandlerFunc
	UploadBillHandler     gin.HandlerFunc

	// Accounts endpoints.
	GetPatientDetailsHandler gin.HandlerFunc
	ListBillRecordsHandler   gin.HandlerFunc
}
