package models

import "time"

// Like — отметка "нравится": пара (кто отметил, чья анкета).
// Уникальность пары обеспечивается на уровне схемы хранилища.
type Like struct {
	LikerUID   string    // Кто поставил отметку
	ProfileUID string    // Чья анкета отмечена
	Status     string    // Статус отметки
	CreatedAt  time.Time // Когда поставлена
}

// Favorite — анкета, добавленная пользователем в избранное.
type Favorite struct {
	UserUID    string
	ProfileUID string
	CreatedAt  time.Time
}

// ProfileView — запись о просмотре анкеты. ViewerUID пуст для анонимных просмотров.
type ProfileView struct {
	ProfileUID string
	ViewerUID  string
	CreatedAt  time.Time
}

// InteractionStats — счётчики взаимодействий по одной анкете.
type InteractionStats struct {
	Likes     int `json:"likes"`
	Favorites int `json:"favorites"`
	Views     int `json:"views"`
}
