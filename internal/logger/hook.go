package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook buffer các log entry và ghi ra writers trong goroutine riêng.
// Khi hàng đợi đầy thì entry bị bỏ qua thay vì block request.
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	service string
}

// NewAsyncHook tạo async hook với nhiều writers, bufferSize <= 0 thì dùng 1000
func NewAsyncHook(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	h := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}
	h.wg.Add(1)
	go h.processEntries()
	return h
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire không block: đưa entry vào channel, đã đóng thì ghi trực tiếp
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		h.write(entry)
		return nil
	}

	select {
	case h.entries <- detach(entry):
	default:
	}
	return nil
}

// detach sao chép entry, không giữ Buffer mà logrus sẽ tái sử dụng sau khi Fire trả về
func detach(entry *logrus.Entry) *logrus.Entry {
	cp := entry.Dup()
	cp.Level = entry.Level
	cp.Message = entry.Message
	cp.Caller = entry.Caller
	return cp
}

func (h *AsyncHook) processEntries() {
	defer h.wg.Done()
	for entry := range h.entries {
		h.safeWrite(entry)
	}
}

// safeWrite có recover để goroutine logger không làm crash server
func (h *AsyncHook) safeWrite(entry *logrus.Entry) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER PANIC] %v\n", r)
			debug.PrintStack()
		}
	}()
	h.write(entry)
}

func (h *AsyncHook) write(entry *logrus.Entry) {
	if h.service != "" {
		if _, ok := entry.Data["service"]; !ok {
			entry.Data["service"] = h.service
		}
	}

	var data []byte
	var err error
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		data, err = entry.Logger.Formatter.Format(entry)
	} else {
		var line string
		line, err = entry.String()
		data = []byte(line)
	}
	if err != nil {
		return
	}

	for _, w := range h.writers {
		_, _ = w.Write(data)
	}
}

// Close đóng hook và đợi tất cả entries được xử lý xong
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}
