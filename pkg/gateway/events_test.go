package gateway_test

import (
	"errors"
	"testing"

	"finchpay/pkg/gateway"
)

func TestParseEnvelope(t *testing.T) {
	env, err := gateway.ParseEnvelope([]byte(`{"event":"charge.completed","data":{"id":1,"txRef":"FNC-1","amount":10000,"fee":100,"status":"successful","paymentType":"wallet_funding"}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if env.Event != gateway.EventChargeCompleted {
		t.Fatalf("event = %q", env.Event)
	}

	charge, err := gateway.DecodeCharge(env)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if charge.TxRef != "FNC-1" || charge.Amount != 10000 || charge.Fee != 100 {
		t.Fatalf("charge = %+v", charge)
	}
	if len(charge.Raw) == 0 {
		t.Fatal("raw payload not kept")
	}
}

func TestParseEnvelopeMalformed(t *testing.T) {
	if _, err := gateway.ParseEnvelope([]byte(`{not json`)); !errors.Is(err, gateway.ErrMalformedPayload) {
		t.Fatalf("got %v, want ErrMalformedPayload", err)
	}
	if _, err := gateway.ParseEnvelope([]byte(`{"data":{}}`)); !errors.Is(err, gateway.ErrMissingEvent) {
		t.Fatalf("got %v, want ErrMissingEvent", err)
	}
}

func TestDecodeChargeRequiresTxRef(t *testing.T) {
	env, err := gateway.ParseEnvelope([]byte(`{"event":"charge.completed","data":{"id":1}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := gateway.DecodeCharge(env); !errors.Is(err, gateway.ErrMalformedPayload) {
		t.Fatalf("got %v, want ErrMalformedPayload", err)
	}
}

func TestDecodeTransfer(t *testing.T) {
	env, err := gateway.ParseEnvelope([]byte(`{"event":"transfer.failed","data":{"id":555,"reference":"rs-x","status":"FAILED","complete_message":"insufficient float"}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tr, err := gateway.DecodeTransfer(env)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tr.ID != 555 || tr.Message != "insufficient float" {
		t.Fatalf("transfer = %+v", tr)
	}
}

func TestSignatureRoundTrip(t *testing.T) {
	body := []byte(`{"event":"charge.completed"}`)
	sig := gateway.Sign(body, "s3cret")
	if !gateway.VerifySignature(body, sig, "s3cret") {
		t.Fatal("valid signature rejected")
	}
	if gateway.VerifySignature(body, sig, "other-secret") {
		t.Fatal("signature verified under wrong secret")
	}
	if gateway.VerifySignature(body, "deadbeef", "s3cret") {
		t.Fatal("bogus signature accepted")
	}
	if gateway.VerifySignature([]byte(`{"event":"tampered"}`), sig, "s3cret") {
		t.Fatal("tampered body accepted")
	}
}
