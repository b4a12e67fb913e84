package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventVendorOnboarded, n.handleVendorOnboarded)
	n.dispatcher.Subscribe(events.EventShiftAssigned, n.handleShiftAssigned)
	n.dispatcher.Subscribe(events.EventVendorCheckedIn, n.handleVendorCheckedIn)
	n.dispatcher.Subscribe(events.EventPaymentAdjusted, n.handlePaymentAdjusted)
	n.dispatcher.Subscribe(events.EventDocumentSigned, n.handleDocumentSigned)
	n.dispatcher.Subscribe(events.EventPasswordReset, n.handlePasswordReset)
	n.dispatcher.Subscribe(events.EventMFACodeRequested, n.handleMFACodeRequested)
}

func (n *NotificationService) handleVendorOnboarded(ctx context.Context, event events.Event) error {
	n.logger.Info("VendorOnboarded", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleShiftAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("ShiftAssigned", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleVendorCheckedIn(ctx context.Context, event events.Event) error {
	n.logger.Info("VendorCheckedIn", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePaymentAdjusted(ctx context.Context, event events.Event) error {
	n.logger.Info("PaymentAdjusted", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDocumentSigned(ctx context.Context, event events.Event) error {
	n.logger.Info("DocumentSigned", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePasswordReset(ctx context.Context, event events.Event) error {
	n.logger.Info("PasswordReset", zap.String("subject_id", event.SubjectID))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMFACodeRequested(ctx context.Context, event events.Event) error {
	// The payload carries the plaintext code for delivery; keep it out of logs.
	n.logger.Info("MFACodeRequested", zap.String("subject_id", event.SubjectID))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
