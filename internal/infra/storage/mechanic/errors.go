package mechanic

import "errors"

var (
	// ErrMechanicNotFound возвращается, когда механик не найден
	ErrMechanicNotFound = errors.New("mechanic.repository: mechanic not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("mechanic.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("mechanic.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("mechanic.repository: failed to scan row")
)
