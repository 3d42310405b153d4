// Package models содержит доменные структуры платформы:
// пользователей и анкеты моделей, взаимодействия с анкетами,
// подписки и события уведомлений, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей.
const (
	RoleModel = "model"
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Статусы модерации анкеты.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User представляет зарегистрированного пользователя системы.
//
// Для роли model структура одновременно является анкетой: поля анкеты
// опциональны и заполняются владельцем после регистрации. Обязательность
// полей проверяется на границе приёма данных (Dummy*-типы), здесь все
// опциональные поля явно помечены указателями или могут быть пустыми.
type User struct {
	UID             string     // Уникальный идентификатор пользователя
	Email           string     // Электронная почта (уникальная, в нижнем регистре)
	PasswordHash    string     // Хэш пароля пользователя
	Name            string     // Отображаемое имя
	Role            string     // Роль: model, user или admin
	Status          string     // Статус модерации: pending, approved или rejected
	Gender          string     // Пол
	Age             *int       // Возраст
	Bio             string     // Описание анкеты
	Location        string     // Город или район
	Whatsapp        string     // Номер для связи, используется в уведомлениях
	Height          string     // Рост
	Measurements    string     // Параметры
	Languages       []string   // Языки общения
	ServiceHours    string     // Часы работы
	ProfilePhoto    string     // Ключ главной фотографии в объектном хранилище
	Photos          []string   // Ключи фотографий
	Videos          []string   // Ключи видео
	Document        string     // Ключ документа, подтверждающего возраст
	CreatedAt       *time.Time // Дата регистрации
	SubscriptionEnd *time.Time // Дата окончания оплаченной подписки, nil если не оплачена
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email    string `json:"email" validate:"required,email"`       // Электронная почта
	Password string `json:"password" validate:"required,min=6"`    // Пароль (минимум 6 символов)
	Name     string `json:"name" validate:"required"`              // Отображаемое имя
	Gender   string `json:"gender" validate:"omitempty,alpha"`     // Пол
	Whatsapp string `json:"whatsapp" validate:"omitempty,max=32"`  // Номер для связи
	Location string `json:"location" validate:"omitempty,max=128"` // Город или район
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"` // Электронная почта
	Password string `json:"password" validate:"required"`    // Пароль
}

// DummyProfileUpdate используется для приёма изменений анкеты из JSON-запроса.
// Указатели отличают "поле не передано" от "поле сброшено в пустое значение".
type DummyProfileUpdate struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Age          *int     `json:"age,omitempty" validate:"omitempty,gte=18,lte=99"`
	Bio          *string  `json:"bio,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Whatsapp     *string  `json:"whatsapp,omitempty"`
	Height       *string  `json:"height,omitempty"`
	Measurements *string  `json:"measurements,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	ServiceHours *string  `json:"service_hours,omitempty"`
}

// SessionRecord — запись сессии, сохраняемая в кеше между запросами.
// Зеркалирует клиентский кеш сессии: текущий пользователь и флаги предпочтений.
type SessionRecord struct {
	User        *User  `json:"user"`
	AgeVerified bool   `json:"age_verified"`
	Gender      string `json:"gender,omitempty"`
}
