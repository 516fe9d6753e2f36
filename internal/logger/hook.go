package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// StderrErrorHook ghi các entry mức error trở lên ra terminal khi log chỉ ghi vào file,
// để người vận hành vẫn thấy lỗi khiến công cụ dừng
type StderrErrorHook struct {
	writer    io.Writer
	formatter logrus.Formatter
}

// NewStderrErrorHook tạo hook ghi vào writer với định dạng text
func NewStderrErrorHook(writer io.Writer) *StderrErrorHook {
	return &StderrErrorHook{
		writer:    writer,
		formatter: &logrus.TextFormatter{DisableTimestamp: true},
	}
}

// Levels trả về các log levels mà hook này xử lý
func (h *StderrErrorHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

// Fire được gọi mỗi khi có entry mức error trở lên
func (h *StderrErrorHook) Fire(entry *logrus.Entry) error {
	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(data)
	return err
}
