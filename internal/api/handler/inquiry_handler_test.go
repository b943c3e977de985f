package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/careerguide/portal/internal/core/service"
)

type stubInquiries struct {
	contactErr error
	contacts   int
	subscribed []string
}

func (s *stubInquiries) SubmitContact(context.Context, string, string, string) error {
	s.contacts++
	return s.contactErr
}

func (s *stubInquiries) Subscribe(_ context.Context, email string) error {
	s.subscribed = append(s.subscribed, email)
	return nil
}

func TestInquiryHandler_Contact(t *testing.T) {
	stub := &stubInquiries{}
	c, rec := newDeviceContext(http.MethodPost, "/v1/contact",
		jsonBody(`{"name":"Ana","email":"ana@example.com","message":"Hi"}`), nil)

	if err := NewInquiryHandler(stub).Contact(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted || stub.contacts != 1 {
		t.Fatalf("expected 202 and one submission, got %d/%d", rec.Code, stub.contacts)
	}
}

func TestInquiryHandler_ContactValidation(t *testing.T) {
	stub := &stubInquiries{}
	c, _ := newDeviceContext(http.MethodPost, "/v1/contact", jsonBody(`{"name":"Ana","email":"bad"}`), nil)

	if err := NewInquiryHandler(stub).Contact(c); err == nil {
		t.Fatalf("expected validation error")
	}
	if stub.contacts != 0 {
		t.Fatalf("service must not be called")
	}
}

func TestInquiryHandler_ContactQueueFull(t *testing.T) {
	stub := &stubInquiries{contactErr: service.ErrQueueFull}
	c, _ := newDeviceContext(http.MethodPost, "/v1/contact",
		jsonBody(`{"name":"Ana","email":"ana@example.com","message":"Hi"}`), nil)

	if err := NewInquiryHandler(stub).Contact(c); !errors.Is(err, service.ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestInquiryHandler_Newsletter(t *testing.T) {
	stub := &stubInquiries{}
	c, rec := newDeviceContext(http.MethodPost, "/v1/newsletter", jsonBody(`{"email":"r@example.com"}`), nil)

	if err := NewInquiryHandler(stub).Newsletter(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted || len(stub.subscribed) != 1 {
		t.Fatalf("unexpected result: %d %v", rec.Code, stub.subscribed)
	}
}
