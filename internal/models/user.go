package models

import "time"

// User представляет пользователя в системе
// Password и RefreshToken никогда не отдаются наружу (json:"-")
type User struct {
	ID           string    `json:"id"`         // UUID пользователя
	Username     string    `json:"username"`   // уникальный username (lowercased, trimmed)
	Email        string    `json:"email"`      // уникальный email
	FullName     string    `json:"fullName"`   // полное имя для отображения
	Password     string    `json:"-"`          // bcrypt хеш пароля
	Avatar       string    `json:"avatar"`     // URL аватара (обязательный)
	CoverImage   string    `json:"coverImage"` // URL обложки (опциональный, "" если нет)
	RefreshToken string    `json:"-"`          // текущий refresh token (single-slot, "" после logout)
	CreatedAt    time.Time `json:"createdAt"`  // время создания
	UpdatedAt    time.Time `json:"updatedAt"`  // время последнего обновления
}

// PublicUser представляет запись пользователя без секретных полей
type PublicUser struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Public возвращает проекцию пользователя без password и refresh token
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
