package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

func TestResolveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	daysAgo := func(d int) *time.Time {
		ts := now.AddDate(0, 0, -d)
		return &ts
	}
	at := func(ts time.Time) *time.Time { return &ts }

	tests := []struct {
		name            string
		createdAt       *time.Time
		subscriptionEnd *time.Time
		wantStatus      string
		wantDays        int
	}{
		{
			name:       "регистрация сегодня - полный пробный период",
			createdAt:  daysAgo(0),
			wantStatus: models.SubscriptionTrial,
			wantDays:   7,
		},
		{
			name:       "три дня после регистрации",
			createdAt:  daysAgo(3),
			wantStatus: models.SubscriptionTrial,
			wantDays:   4,
		},
		{
			name:       "шесть дней - последний день пробного периода",
			createdAt:  daysAgo(6),
			wantStatus: models.SubscriptionTrial,
			wantDays:   1,
		},
		{
			name:       "семь дней - пробный период истек",
			createdAt:  daysAgo(7),
			wantStatus: models.SubscriptionExpired,
			wantDays:   0,
		},
		{
			name:       "десять дней - истек",
			createdAt:  daysAgo(10),
			wantStatus: models.SubscriptionExpired,
			wantDays:   0,
		},
		{
			name:       "нет даты регистрации - истек",
			createdAt:  nil,
			wantStatus: models.SubscriptionExpired,
			wantDays:   0,
		},
		{
			name:            "subscription end in the future - active",
			createdAt:       daysAgo(100),
			subscriptionEnd: at(now.Add(time.Hour)),
			wantStatus:      models.SubscriptionActive,
			wantDays:        0,
		},
		{
			name:            "subscription end in the past - expired",
			createdAt:       daysAgo(1),
			subscriptionEnd: at(now.Add(-time.Hour)),
			wantStatus:      models.SubscriptionExpired,
			wantDays:        0,
		},
		{
			name:            "subscription end exactly now - expired",
			createdAt:       daysAgo(1),
			subscriptionEnd: at(now),
			wantStatus:      models.SubscriptionExpired,
			wantDays:        0,
		},
		{
			name:            "оплаченная подписка важнее свежего пробного периода",
			createdAt:       daysAgo(0),
			subscriptionEnd: at(now.Add(-time.Minute)),
			wantStatus:      models.SubscriptionExpired,
			wantDays:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(tt.createdAt, tt.subscriptionEnd, now)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantDays, got.DaysRemaining)
		})
	}
}

func TestResolveStatus_PartialDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	createdAt := now.Add(-36 * time.Hour)

	got := ResolveStatus(&createdAt, nil, now)

	// Полтора дня округляются вниз до одного полного дня.
	assert.Equal(t, models.SubscriptionTrial, got.Status)
	assert.Equal(t, 6, got.DaysRemaining)
}
