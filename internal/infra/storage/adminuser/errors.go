package adminuser

import "errors"

var (
	// ErrUserNotFound возвращается, когда администратор не найден
	ErrUserNotFound = errors.New("adminuser.repository: admin user not found")

	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("adminuser.repository: session not found")

	// ErrDuplicateUsername возвращается при нарушении уникальности имени пользователя
	ErrDuplicateUsername = errors.New("adminuser.repository: username already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("adminuser.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("adminuser.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("adminuser.repository: failed to scan row")
)
