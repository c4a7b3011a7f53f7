package domain

import "errors"

var (
	// ErrMissingInput не заполнено обязательное поле, запрос в бэкенд не делался
	ErrMissingInput = errors.New("required input is missing")
	// ErrSessionBusy в сессии уже выполняется действие
	ErrSessionBusy = errors.New("session has a request in flight")
	// ErrUserNotFound бэкенд ответил 404 на запрос пользователя
	ErrUserNotFound = errors.New("user not found")
)

// AlertError ошибка, которую пользователь видит как одно общее сообщение.
// Причина (сеть, статус, разбор ответа) пользователю не показывается.
type AlertError struct {
	Message string
	Err     error
}

func (e *AlertError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AlertError) Unwrap() error {
	return e.Err
}

func NewAlert(message string, err error) error {
	return &AlertError{Message: message, Err: err}
}

// AlertMessage достаёт сообщение для пользователя, если это AlertError
func AlertMessage(err error) (string, bool) {
	var alertErr *AlertError
	if errors.As(err, &alertErr) {
		return alertErr.Message, true
	}
	return "", false
}
