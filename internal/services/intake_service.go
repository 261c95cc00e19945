package services

import (
	"errors"
	"fmt"
	"strings"

	"farmstock_backend/internal/config"
	"farmstock_backend/internal/mailer"
)

// ErrNotificationFailed is returned when an intake submission was valid but
// the outbound notification could not be delivered. Delivery is not retried.
var ErrNotificationFailed = errors.New("notification delivery failed")

// OrderRequest is the public order intake payload.
type OrderRequest struct {
	ProductName     string  `json:"product_name" binding:"required,max=255"`
	Quantity        int     `json:"quantity" binding:"required,gte=1"`
	UnitPrice       *int    `json:"unit_price" binding:"required,gte=0"` // pointer so a zero price passes required
	FullName        string  `json:"fullname" binding:"required,max=255"`
	Email           string  `json:"email" binding:"required,email"`
	PhoneNumber     string  `json:"phone_number" binding:"required,max=20"`
	DeliveryAddress string  `json:"delivery_address" binding:"required"`
	WhatsappNumber  bool    `json:"whatsapp_number"`
	AdditionalInfo  *string `json:"additional_info"`
}

// ContactRequest is the public contact intake payload.
type ContactRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   string  `json:"phone" binding:"required,max=20"`
	Company *string `json:"company" binding:"omitempty,max=255"`
	Message string  `json:"message" binding:"required"`
}

// IntakeService relays validated public submissions as email notifications.
// Stateless: nothing is persisted, and a duplicate submission produces a
// duplicate notification.
type IntakeService interface {
	SubmitOrder(req OrderRequest) error
	SubmitContact(req ContactRequest) error
}

type intakeService struct {
	mailer mailer.Mailer
	site   config.SiteConfig
}

// NewIntakeService creates a new IntakeService.
func NewIntakeService(m mailer.Mailer, site config.SiteConfig) IntakeService {
	return &intakeService{mailer: m, site: site}
}

func (s *intakeService) SubmitOrder(req OrderRequest) error {
	var body strings.Builder
	fmt.Fprintf(&body, "New order request received on %s.\n\n", s.site.Name)
	fmt.Fprintf(&body, "Product: %s\n", req.ProductName)
	fmt.Fprintf(&body, "Quantity: %d\n", req.Quantity)
	fmt.Fprintf(&body, "Unit price: %d\n", *req.UnitPrice)
	fmt.Fprintf(&body, "Customer: %s\n", req.FullName)
	fmt.Fprintf(&body, "Email: %s\n", req.Email)
	fmt.Fprintf(&body, "Phone: %s\n", req.PhoneNumber)
	fmt.Fprintf(&body, "Reachable on WhatsApp: %s\n", yesNo(req.WhatsappNumber))
	fmt.Fprintf(&body, "Delivery address: %s\n", req.DeliveryAddress)
	if req.AdditionalInfo != nil && *req.AdditionalInfo != "" {
		fmt.Fprintf(&body, "Additional info: %s\n", *req.AdditionalInfo)
	}

	subject := fmt.Sprintf("Order request: %s (x%d)", req.ProductName, req.Quantity)
	if err := s.mailer.Send(s.site.NotifyEmail, subject, body.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return nil
}

func (s *intakeService) SubmitContact(req ContactRequest) error {
	var body strings.Builder
	fmt.Fprintf(&body, "New contact message received on %s.\n\n", s.site.Name)
	fmt.Fprintf(&body, "Name: %s\n", req.Name)
	fmt.Fprintf(&body, "Email: %s\n", req.Email)
	fmt.Fprintf(&body, "Phone: %s\n", req.Phone)
	if req.Company != nil && *req.Company != "" {
		fmt.Fprintf(&body, "Company: %s\n", *req.Company)
	}
	fmt.Fprintf(&body, "\nMessage:\n%s\n", req.Message)

	subject := fmt.Sprintf("Contact message from %s", req.Name)
	if err := s.mailer.Send(s.site.NotifyEmail, subject, body.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
