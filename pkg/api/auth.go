package api

// Response представляет стандартный конверт успешного ответа
type Response struct {
	Data       any    `json:"data"`       // полезная нагрузка
	Message    string `json:"message"`    // человекочитаемое сообщение
	StatusCode int    `json:"statusCode"` // HTTP статус код
	Success    bool   `json:"success"`    // true для статусов < 400
}

// ErrorResponse представляет конверт ответа с ошибкой
type ErrorResponse struct {
	Message    string   `json:"message"`    // описание ошибки
	Errors     []string `json:"errors"`     // дополнительные детали (может быть пустым)
	StatusCode int      `json:"statusCode"` // HTTP статус код
	Success    bool     `json:"success"`    // всегда false
}

// LoginRequest представляет запрос на аутентификацию
// Достаточно одного идентификатора: username или email
type LoginRequest struct {
	Username string `json:"username"` // username пользователя
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль в открытом виде
}

// LoginResponse представляет ответ на успешный вход
type LoginResponse struct {
	User         any    `json:"user"`         // запись пользователя без секретных полей
	AccessToken  string `json:"accessToken"`  // JWT access token
	RefreshToken string `json:"refreshToken"` // JWT refresh token
	ExpiresIn    int64  `json:"expiresIn"`    // время жизни access token в секундах
}

// RefreshRequest представляет запрос на ротацию токенов
// Токен также может прийти в cookie refreshToken
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse представляет ответ с новой парой токенов
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`  // JWT access token
	RefreshToken string `json:"refreshToken"` // JWT refresh token
	ExpiresIn    int64  `json:"expiresIn"`    // время жизни access token в секундах
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
