package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New создает логгер сервиса: JSON в stdout
func New(logLevel string) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{})

	log.SetOutput(os.Stdout)

	log.SetLevel(parseLevel(logLevel))
	return log
}

// NewCLI создает логгер для утилиты командной строки: текст без цветов.
// Вывод отчета занимает stdout, поэтому логи идут в переданный writer.
func NewCLI(logLevel string, out io.Writer) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	})

	log.SetOutput(out)

	log.SetLevel(parseLevel(logLevel))
	return log
}

func parseLevel(logLevel string) logrus.Level {
	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	return level
}
