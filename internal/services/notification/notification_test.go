package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/profile-platform/internal/lib/phone"
	"github.com/magabrotheeeer/profile-platform/internal/models"
)

type DelivererMock struct {
	mock.Mock
}

func (m *DelivererMock) Deliver(ctx context.Context, payload models.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(deliverer Deliverer) *NotificationService {
	svc := NewNotificationService(deliverer, "55", newNoopLogger())
	svc.backoffStep = 0
	return svc
}

func TestSend_Success(t *testing.T) {
	deliverer := new(DelivererMock)
	svc := newTestService(deliverer)

	deliverer.On("Deliver", mock.Anything, mock.MatchedBy(func(p models.WebhookPayload) bool {
		return p.ModelPhone == "5511999887766" &&
			p.Type == models.EventLike &&
			p.UserName == "Carlos" &&
			p.Timestamp != ""
	})).Return(nil).Once()

	result, err := svc.Send(context.Background(), models.DummyNotification{
		Type:       models.EventLike,
		ModelName:  "Ana",
		ModelPhone: "(11) 99988-7766",
		UserName:   "Carlos",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result.WhatsappLink)
	deliverer.AssertExpectations(t)
}

func TestSend_AnonymousUserName(t *testing.T) {
	deliverer := new(DelivererMock)
	svc := newTestService(deliverer)

	deliverer.On("Deliver", mock.Anything, mock.MatchedBy(func(p models.WebhookPayload) bool {
		return p.UserName == models.AnonymousUserName
	})).Return(nil).Once()

	_, err := svc.Send(context.Background(), models.DummyNotification{
		Type:       models.EventFavorite,
		ModelName:  "Ana",
		ModelPhone: "11999887766",
	})

	assert.NoError(t, err)
	deliverer.AssertExpectations(t)
}

func TestSend_WhatsappLink(t *testing.T) {
	deliverer := new(DelivererMock)
	svc := newTestService(deliverer)

	deliverer.On("Deliver", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := svc.Send(context.Background(), models.DummyNotification{
		Type:       models.EventWhatsapp,
		ModelName:  "Ana",
		ModelPhone: "(11) 99988-7766",
		UserName:   "Carlos",
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://wa.me/5511999887766", result.WhatsappLink)
	deliverer.AssertExpectations(t)
}

func TestSend_InvalidPhoneRejected(t *testing.T) {
	deliverer := new(DelivererMock)
	svc := newTestService(deliverer)

	_, err := svc.Send(context.Background(), models.DummyNotification{
		Type:       models.EventLike,
		ModelName:  "Ana",
		ModelPhone: "12345",
	})

	// Некорректный телефон не доставляется и не повторяется.
	assert.ErrorIs(t, err, phone.ErrInvalidPhone)
	deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestSend_ViewInvalidPhoneDropped(t *testing.T) {
	deliverer := new(DelivererMock)
	svc := newTestService(deliverer)

	result, err := svc.Send(context.Background(), models.DummyNotification{
		Type:       models.EventView,
		ModelName:  "Ana",
		ModelPhone: "12345",
	})

	assert.NoError(t, err)
	assert.Nil(t, result)
	deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestSend_RetriesTransportErrors(t *testing.T) {
	deliverer := new(DelivererMock)
	svc := newTestService(deliverer)

	deliverer.On("Deliver", mock.Anything, mock.Anything).
		Return(errors.New("connection refused")).Times(4)

	_, err := svc.Send(context.Background(), models.DummyNotification{
		Type:       models.EventLike,
		ModelName:  "Ana",
		ModelPhone: "11999887766",
	})

	assert.Error(t, err)
	deliverer.AssertExpectations(t)
}

func TestSend_ViewDeliveryFailureIsNotAnError(t *testing.T) {
	deliverer := new(DelivererMock)
	svc := newTestService(deliverer)

	deliverer.On("Deliver", mock.Anything, mock.Anything).
		Return(errors.New("connection refused")).Times(4)

	result, err := svc.Send(context.Background(), models.DummyNotification{
		Type:       models.EventView,
		ModelName:  "Ana",
		ModelPhone: "11999887766",
	})

	assert.NoError(t, err)
	assert.Nil(t, result)
	deliverer.AssertExpectations(t)
}

func TestSendExpiryInfo(t *testing.T) {
	deliverer := new(DelivererMock)
	svc := newTestService(deliverer)

	deliverer.On("Deliver", mock.Anything, mock.MatchedBy(func(p models.WebhookPayload) bool {
		return p.Type == models.EventSubscriptionExpiring && p.ModelPhone == "5511999887766"
	})).Return(nil).Once()

	err := svc.SendExpiryInfo([]byte(`{"user_uid":"u1","name":"Ana","whatsapp":"11999887766","kind":"trial"}`))

	assert.NoError(t, err)
	deliverer.AssertExpectations(t)
}

func TestSendExpiryInfo_InvalidPhoneDropped(t *testing.T) {
	deliverer := new(DelivererMock)
	svc := newTestService(deliverer)

	err := svc.SendExpiryInfo([]byte(`{"user_uid":"u1","name":"Ana","whatsapp":"123","kind":"trial"}`))

	// Сообщение отбрасывается, а не возвращается в очередь.
	assert.NoError(t, err)
	deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestSendExpiryInfo_BadJSONDropped(t *testing.T) {
	deliverer := new(DelivererMock)
	svc := newTestService(deliverer)

	err := svc.SendExpiryInfo([]byte(`{broken`))

	assert.NoError(t, err)
	deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}
