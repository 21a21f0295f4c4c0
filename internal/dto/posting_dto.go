package dto

import (
	"time"

	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// InvoicePostedRequest defines the expected JSON structure for an invoice event.
type InvoicePostedRequest struct {
	InvoiceID         string          `json:"invoiceID" binding:"required"`
	InvoiceNo         string          `json:"invoiceNo" binding:"required"`
	Direction         string          `json:"direction" binding:"required,oneof=OUTBOUND INBOUND"`
	GrossTotal        decimal.Decimal `json:"grossTotal" binding:"required"`
	BusinessPartnerID string          `json:"businessPartnerID" binding:"required"`
	PostingDate       time.Time       `json:"postingDate" binding:"required"`
}

// ToInvoicePostedEvent converts the request into the service event.
func (r InvoicePostedRequest) ToInvoicePostedEvent(companyID string) portssvc.InvoicePostedEvent {
	return portssvc.InvoicePostedEvent{
		CompanyID:         companyID,
		InvoiceID:         r.InvoiceID,
		InvoiceNo:         r.InvoiceNo,
		Direction:         portssvc.InvoiceDirection(r.Direction),
		GrossTotal:        r.GrossTotal,
		BusinessPartnerID: r.BusinessPartnerID,
		PostingDate:       r.PostingDate,
	}
}

// PaymentPostedRequest defines the expected JSON structure for a payment event.
type PaymentPostedRequest struct {
	PaymentID              string          `json:"paymentID" binding:"required"`
	Amount                 decimal.Decimal `json:"amount" binding:"required"`
	BusinessPartnerID      string          `json:"businessPartnerID" binding:"required"`
	LinkedInvoiceID        *string         `json:"linkedInvoiceID"`
	LinkedInvoiceDirection *string         `json:"linkedInvoiceDirection" binding:"omitempty,oneof=OUTBOUND INBOUND"`
	PostingDate            time.Time       `json:"postingDate" binding:"required"`
	BankReference          string          `json:"bankReference"`
}

// ToPaymentPostedEvent converts the request into the service event.
func (r PaymentPostedRequest) ToPaymentPostedEvent(companyID string) portssvc.PaymentPostedEvent {
	event := portssvc.PaymentPostedEvent{
		CompanyID:         companyID,
		PaymentID:         r.PaymentID,
		Amount:            r.Amount,
		BusinessPartnerID: r.BusinessPartnerID,
		LinkedInvoiceID:   r.LinkedInvoiceID,
		PostingDate:       r.PostingDate,
		BankReference:     r.BankReference,
	}
	if r.LinkedInvoiceDirection != nil {
		direction := portssvc.InvoiceDirection(*r.LinkedInvoiceDirection)
		event.LinkedInvoiceDirection = &direction
	}
	return event
}
