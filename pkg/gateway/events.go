// Package gateway models the payment gateway's webhook wire format: a signed
// envelope carrying one of a small set of known event payloads.
package gateway

import (
	"encoding/json"
	"errors"
)

// Event names delivered by the gateway. Anything else is acknowledged and
// dropped.
const (
	EventChargeCompleted   = "charge.completed"
	EventTransferCompleted = "transfer.completed"
	EventTransferFailed    = "transfer.failed"
)

// Gateway-side charge statuses.
const (
	ChargeStatusSuccessful = "successful"
)

var (
	ErrMalformedPayload = errors.New("malformed webhook payload")
	ErrMissingEvent     = errors.New("webhook payload has no event field")
)

// Envelope is the outer webhook body. Data stays raw until the event name
// selects a concrete payload type, and each decoded payload keeps the raw
// bytes for forward compatibility with fields this service does not model.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func ParseEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, ErrMalformedPayload
	}
	if env.Event == "" {
		return nil, ErrMissingEvent
	}
	return &env, nil
}

// ChargeData is the payload of a charge.completed event.
type ChargeData struct {
	ID          int64           `json:"id"`
	TxRef       string          `json:"txRef"`
	Amount      int64           `json:"amount"`
	Fee         int64           `json:"fee"`
	Status      string          `json:"status"`
	PaymentType string          `json:"paymentType"`
	Customer    json.RawMessage `json:"customer"`
	Entity      json.RawMessage `json:"entity"`

	Raw json.RawMessage `json:"-"`
}

func DecodeCharge(env *Envelope) (*ChargeData, error) {
	var c ChargeData
	if err := json.Unmarshal(env.Data, &c); err != nil {
		return nil, ErrMalformedPayload
	}
	if c.TxRef == "" {
		return nil, ErrMalformedPayload
	}
	c.Raw = env.Data
	return &c, nil
}

// TransferData is the payload of transfer.completed and transfer.failed
// events. ID is the gateway's identifier for the outbound transfer.
type TransferData struct {
	ID        int64           `json:"id"`
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Message   string          `json:"complete_message"`

	Raw json.RawMessage `json:"-"`
}

func DecodeTransfer(env *Envelope) (*TransferData, error) {
	var t TransferData
	if err := json.Unmarshal(env.Data, &t); err != nil {
		return nil, ErrMalformedPayload
	}
	if t.ID == 0 {
		return nil, ErrMalformedPayload
	}
	t.Raw = env.Data
	return &t, nil
}
