// Package errors - структурированная ошибка с категорией для границ сервиса:
// HTTP-обработчики и CLI по категории решают, что показать вызывающему.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory - категория ошибки
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryIO         ErrorCategory = "io"
	CategoryLayout     ErrorCategory = "layout"
	CategoryInternal   ErrorCategory = "internal"
)

// ReportError - ошибка с категорией, сообщением и исходной причиной
type ReportError struct {
	Category ErrorCategory `json:"category"`
	Message  string        `json:"message"`
	Cause    error         `json:"-"`
}

func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *ReportError) Unwrap() error {
	return e.Cause
}

// New создает ошибку без причины
func New(category ErrorCategory, message string) *ReportError {
	return &ReportError{Category: category, Message: message}
}

// Wrap оборачивает причину
func Wrap(err error, category ErrorCategory, message string) *ReportError {
	return &ReportError{Category: category, Message: message, Cause: err}
}

// IOFailure - сбой записи в приемник (диск, поток, отмена на границе записи)
func IOFailure(operation string, cause error) *ReportError {
	return Wrap(cause, CategoryIO, fmt.Sprintf("output %s failed", operation))
}

// LayoutFailure - документ не удалось разложить по страницам
func LayoutFailure(message string) *ReportError {
	return New(CategoryLayout, message)
}

// InternalError - непредвиденная ошибка; детали не должны уходить вызывающему
func InternalError(message string, cause error) *ReportError {
	return Wrap(cause, CategoryInternal, message)
}

// ValidationFailed - запись не прошла валидацию для профиля выгрузки
func ValidationFailed(errorCount int) *ReportError {
	return New(CategoryValidation, fmt.Sprintf("record failed validation with %d error(s)", errorCount))
}

// IsCategory проверяет категорию ошибки с учетом обертывания
func IsCategory(err error, category ErrorCategory) bool {
	var re *ReportError
	if stderrors.As(err, &re) {
		return re.Category == category
	}
	return false
}

// GetCategory извлекает категорию; для прочих ошибок - CategoryInternal
func GetCategory(err error) ErrorCategory {
	var re *ReportError
	if stderrors.As(err, &re) {
		return re.Category
	}
	return CategoryInternal
}
