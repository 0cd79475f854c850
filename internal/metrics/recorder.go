// Package metrics - наблюдаемость генерации отчетов. Сервис и воркер вебхуков
// зависят только от интерфейса Recorder, реализация на Prometheus подключается в main.
package metrics

import "time"

// Outcome - итог генерации отчета
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeRejected Outcome = "rejected" // запись не прошла валидацию
	OutcomeFailed   Outcome = "failed"
)

// Recorder - хуки метрик валидации, рендера и доставки вебхуков
type Recorder interface {
	ObserveValidation(profile string, valid bool, errors, warnings int)
	ObserveRender(outcome Outcome, d time.Duration, pages int)
	ObserveWebhookDelivery(delivered bool)
}

// NoopRecorder используется, когда метрики не подключены
type NoopRecorder struct{}

func (NoopRecorder) ObserveValidation(string, bool, int, int)  {}
func (NoopRecorder) ObserveRender(Outcome, time.Duration, int) {}
func (NoopRecorder) ObserveWebhookDelivery(bool)               {}
