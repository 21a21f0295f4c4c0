package services

import (
	"context"
	"time"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceDirection tells the posting rule engine which side issued the invoice.
type InvoiceDirection string

const (
	// OutboundInvoice is an invoice issued to a customer.
	OutboundInvoice InvoiceDirection = "OUTBOUND"
	// InboundInvoice is an invoice received from a supplier.
	InboundInvoice InvoiceDirection = "INBOUND"
)

// InvoicePostedEvent describes a finalized invoice to be translated into an entry.
type InvoicePostedEvent struct {
	CompanyID         string
	InvoiceID         string
	InvoiceNo         string
	Direction         InvoiceDirection
	GrossTotal        decimal.Decimal
	BusinessPartnerID string
	PostingDate       time.Time
}

// PaymentPostedEvent describes a completed payment to be translated into an entry.
// LinkedInvoiceDirection must be set whenever LinkedInvoiceID is.
type PaymentPostedEvent struct {
	CompanyID              string
	PaymentID              string
	Amount                 decimal.Decimal
	BusinessPartnerID      string
	LinkedInvoiceID        *string
	LinkedInvoiceDirection *InvoiceDirection
	PostingDate            time.Time
	BankReference          string
}

// PostingSvcFacade translates business events into posted journal entries.
type PostingSvcFacade interface {
	// PostInvoiceEvent builds and posts the entry for a finalized invoice.
	PostInvoiceEvent(ctx context.Context, event InvoicePostedEvent, postedBy string) (*domain.JournalEntry, error)

	// PostPaymentEvent builds and posts the entry for a completed payment.
	// A payment with no linked invoice produces no entry and returns nil.
	PostPaymentEvent(ctx context.Context, event PaymentPostedEvent, postedBy string) (*domain.JournalEntry, error)
}
