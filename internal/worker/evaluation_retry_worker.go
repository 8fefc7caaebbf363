package worker

import (
	"context"
	"time"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"
)

// EvaluationRetrier chấm lại các bài đã nộp nhưng chấm lỗi (recruitsvc.Service cài đặt)
type EvaluationRetrier interface {
	RetryPendingEvaluations(ctx context.Context, olderThan time.Duration, limit int) (int, error)
}

// EvaluationRetryWorker worker định kỳ chấm lại bài dừng ở answers_submitted
type EvaluationRetryWorker struct {
	retrier   EvaluationRetrier
	interval  time.Duration // Khoảng thời gian giữa các lần chạy
	olderThan time.Duration // Bài nộp quá thời gian này mới coi là bị kẹt
	batch     int
}

// NewEvaluationRetryWorker tạo mới EvaluationRetryWorker
// Tham số:
//   - interval: mặc định 2 phút, tối thiểu 30 giây
//   - olderThan: mặc định 5 phút, không nhỏ hơn 1 phút để không chấm trùng request đang chờ AI
//   - batch: mặc định 20
func NewEvaluationRetryWorker(retrier EvaluationRetrier, interval, olderThan time.Duration, batch int) *EvaluationRetryWorker {
	if interval < 30*time.Second {
		interval = 2 * time.Minute
	}
	if olderThan < time.Minute {
		olderThan = 5 * time.Minute
	}
	if batch <= 0 {
		batch = 20
	}
	return &EvaluationRetryWorker{
		retrier:   retrier,
		interval:  interval,
		olderThan: olderThan,
		batch:     batch,
	}
}

// Start chạy tới khi ctx bị hủy
func (w *EvaluationRetryWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"olderThan": w.olderThan.String(),
		"batch":     w.batch,
	}).Info("🔄 [EVAL_RETRY] Starting Evaluation Retry Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🔄 [EVAL_RETRY] Evaluation Retry Worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce quét một lần, panic được bắt lại để lần sau vẫn chạy
func (w *EvaluationRetryWorker) RunOnce(ctx context.Context) int {
	log := logger.GetAppLogger()
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": r,
			}).Error("🔄 [EVAL_RETRY] Panic khi chấm lại, sẽ tiếp tục ở lần chạy tiếp theo")
		}
	}()

	done, err := w.retrier.RetryPendingEvaluations(ctx, w.olderThan, w.batch)
	if err != nil {
		log.WithError(err).Error("🔄 [EVAL_RETRY] Failed to list pending evaluations")
		return 0
	}
	if done > 0 {
		log.WithFields(map[string]interface{}{
			"evaluated": done,
		}).Info("🔄 [EVAL_RETRY] Re-evaluated submitted tests")
	}
	return done
}
