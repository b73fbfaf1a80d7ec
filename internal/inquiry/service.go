package inquiry

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/suPer8Hu/goldsmith-storefront/internal/common"
	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"github.com/suPer8Hu/goldsmith-storefront/internal/notify"
	"go.uber.org/zap"
)

const (
	KindOrderIntent = "order_intent"
	KindContact     = "contact"
)

// Notifier is satisfied by *notify.Dispatcher.
type Notifier interface {
	Dispatch(ctx context.Context, n notify.Notification)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type Service struct {
	repo       *Repo
	notifier   Notifier
	ownerEmail string
	log        *zap.Logger
	now        func() time.Time
}

// NewService wires persistence and notification hand-off. ownerEmail receives
// contact-form mail; empty disables that email.
func NewService(repo *Repo, notifier Notifier, ownerEmail string, log *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		notifier:   notifier,
		ownerEmail: ownerEmail,
		log:        logging.OrNop(log),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SubmitOrderIntent stores the intent as pending and then hands the
// notifications off. The returned intent does not depend on delivery.
func (s *Service) SubmitOrderIntent(ctx context.Context, in OrderIntentInput) (*OrderIntent, error) {
	if err := validateOrder(in); err != nil {
		return nil, err
	}

	items := in.Items
	if items == nil {
		items = []LineItem{}
	}
	o := &OrderIntent{
		OrderID:       common.NewPublicRef(),
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		Occasion:      in.Occasion,
		Timeline:      in.Timeline,
		Items:         items,
		TotalEstimate: *in.TotalEstimate,
		Message:       in.Message,
		Status:        StatusPending,
		CreatedAt:     s.now(),
	}
	if err := s.repo.CreateOrderIntent(ctx, o); err != nil {
		return nil, fmt.Errorf("store order intent: %w", err)
	}
	s.log.Info("order intent stored", zap.String("order_id", o.OrderID), zap.Int("items", len(o.Items)))

	n := notify.Notification{
		Kind:         KindOrderIntent,
		Ref:          o.OrderID,
		ChatText:     orderChatText(o),
		EmailTo:      o.CustomerEmail,
		EmailSubject: fmt.Sprintf("Order Intent #%s - Thank you for your interest!", o.OrderID),
	}
	if body, err := renderHTML(orderEmailTmpl, o); err != nil {
		s.log.Warn("render order email failed", zap.String("order_id", o.OrderID), zap.Error(err))
		n.EmailTo = ""
	} else {
		n.EmailHTML = body
	}
	s.dispatch(ctx, n)
	return o, nil
}

func (s *Service) SubmitContact(ctx context.Context, in ContactInput) (*ContactInquiry, error) {
	if err := validateContact(in); err != nil {
		return nil, err
	}

	c := &ContactInquiry{
		InquiryID: common.NewPublicRef(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, fmt.Errorf("store contact inquiry: %w", err)
	}
	s.log.Info("contact inquiry stored", zap.String("inquiry_id", c.InquiryID))

	n := notify.Notification{
		Kind:     KindContact,
		Ref:      c.InquiryID,
		ChatText: contactChatText(c),
	}
	if s.ownerEmail != "" {
		if body, err := renderHTML(contactEmailTmpl, c); err != nil {
			s.log.Warn("render contact email failed", zap.String("inquiry_id", c.InquiryID), zap.Error(err))
		} else {
			n.EmailTo = s.ownerEmail
			n.EmailSubject = fmt.Sprintf("Contact Inquiry #%s - %s", c.InquiryID, c.Subject)
			n.EmailHTML = body
		}
	}
	s.dispatch(ctx, n)
	return c, nil
}

func (s *Service) GetOrderIntent(ctx context.Context, orderID string) (*OrderIntent, error) {
	return s.repo.GetOrderIntent(ctx, strings.ToUpper(strings.TrimSpace(orderID)))
}

func (s *Service) dispatch(ctx context.Context, n notify.Notification) {
	if s.notifier == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("notification dispatch panicked", zap.String("ref", n.Ref), zap.Any("panic", r))
		}
	}()
	s.notifier.Dispatch(ctx, n)
}

type requiredField struct {
	name, value string
}

// firstMissing reports the first blank field in declaration order.
func firstMissing(fields ...requiredField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Reason: "required"}
		}
	}
	return nil
}

func validateOrder(in OrderIntentInput) error {
	if err := firstMissing(
		requiredField{"customer_name", in.CustomerName},
		requiredField{"customer_phone", in.CustomerPhone},
		requiredField{"occasion", in.Occasion},
		requiredField{"timeline", in.Timeline},
	); err != nil {
		return err
	}
	if err := validateEmail("customer_email", in.CustomerEmail); err != nil {
		return err
	}
	if in.TotalEstimate == nil {
		return &ValidationError{Field: "total_estimate", Reason: "required"}
	}
	return nil
}

func validateContact(in ContactInput) error {
	if err := firstMissing(
		requiredField{"name", in.Name},
		requiredField{"phone", in.Phone},
		requiredField{"subject", in.Subject},
		requiredField{"message", in.Message},
	); err != nil {
		return err
	}
	return validateEmail("email", in.Email)
}

func validateEmail(field, v string) error {
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != strings.TrimSpace(v) {
		return &ValidationError{Field: field, Reason: "invalid email"}
	}
	return nil
}
