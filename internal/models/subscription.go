package models

import "time"

// Статусы подписки, вычисляемые из дат.
const (
	SubscriptionTrial   = "trial"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// TrialPeriodDays — длительность бесплатного пробного периода после регистрации.
const TrialPeriodDays = 7

// Subscription — оплаченная подписка модели.
type Subscription struct {
	ID            int        // Идентификатор записи
	UserUID       string     // Владелец подписки
	Amount        float64    // Сумма
	StartDate     time.Time  // Дата начала
	EndDate       time.Time  // Дата окончания
	Status        string     // active или canceled
	PaymentStatus string     // pending, paid или failed
	PaymentURL    string     // Статическая ссылка на оплату
	CreatedAt     time.Time  // Когда создана
	UpdatedAt     *time.Time // Когда последний раз изменена
}

// SubscriptionHistory — запись аудита действий над подпиской (только добавление).
type SubscriptionHistory struct {
	ID             int
	SubscriptionID *int      // nil для действий без привязки к конкретной подписке
	UserUID        string
	Action         string // create или update
	Status         string
	Amount         *float64
	CreatedAt      time.Time
}

// SubscriptionStatus — результат вычисления статуса подписки пользователя.
type SubscriptionStatus struct {
	Status        string `json:"status"`         // trial, active или expired
	DaysRemaining int    `json:"days_remaining"` // Остаток пробного периода в днях, 0 вне trial
}

// DummySubscriptionCreate используется для приёма запроса на создание подписки.
type DummySubscriptionCreate struct {
	Amount float64 `json:"amount" validate:"required,gt=0"` // Сумма (>0)
}

// DummySubscriptionUpdate используется для приёма запроса на продление подписки.
// Дата приходит строкой в формате RFC3339 и парсится вручную.
type DummySubscriptionUpdate struct {
	EndDate string `json:"end_date" validate:"required"` // Новая дата окончания
}
