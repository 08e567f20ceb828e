package service

import (
	"context"
	"encoding/json"

	"finchpay/internal/logging"
	"finchpay/internal/models"
	"finchpay/internal/repository"

	"github.com/sirupsen/logrus"
)

// AlertService records operator alerts for manual reconciliation. It only
// decides that an alert is warranted; delivery is an external concern.
// Alert never returns an error: a dead alert store must not take the
// webhook's critical path down with it.
type AlertService struct {
	alerts *repository.AlertRepository
	logger *logging.Logger
}

func NewAlertService(alerts *repository.AlertRepository, logger *logging.Logger) *AlertService {
	return &AlertService{alerts: alerts, logger: logger}
}

func (s *AlertService) Alert(ctx context.Context, code, severity, message string, fields map[string]interface{}) {
	var contextJSON string
	if fields != nil {
		b, _ := json.Marshal(fields)
		contextJSON = string(b)
	}

	s.logger.WithFields(logrus.Fields{
		"alert_code": code,
		"severity":   severity,
		"context":    contextJSON,
	}).Warn(message)

	err := s.alerts.Create(ctx, &models.OperatorAlert{
		Code:     code,
		Severity: severity,
		Message:  message,
		Context:  contextJSON,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to persist operator alert")
	}
}
