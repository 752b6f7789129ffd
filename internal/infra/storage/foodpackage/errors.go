package foodpackage

import "errors"

var (
	// ErrFoodPackageNotFound возвращается, когда пакет не найден
	ErrFoodPackageNotFound = errors.New("foodpackage.repository: food package not found")

	// ErrDuplicateName возвращается, когда пакет с таким названием уже есть
	ErrDuplicateName = errors.New("foodpackage.repository: food package name already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("foodpackage.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("foodpackage.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("foodpackage.repository: failed to scan row")
)
