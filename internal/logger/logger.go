package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// JSON для production, текст включается через SetTextFormatter
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// Setup настраивает логгер под окружение: в development - debug и текстовый вывод.
func Setup(env string) {
	if env == "development" {
		Init("debug")
		SetTextFormatter()
		return
	}
	Init("info")
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// Component возвращает запись лога с полем component.
// До Init записи отбрасываются.
func Component(name string) *logrus.Entry {
	if Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l.WithField("component", name)
	}
	return Log.WithField("component", name)
}
