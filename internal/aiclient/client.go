// Package aiclient gọi dịch vụ AI bên ngoài: chấm CV, sinh đề test và chấm bài.
// Mỗi lần gọi có timeout riêng và không tự động thử lại.
package aiclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/metrics"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Tên các thao tác, trùng với path của dịch vụ AI
const (
	OpResumeScan   = "resume-scan"
	OpTestGenerate = "test-generate"
	OpTestScan     = "test-scan"
)

// maxResponseBytes giới hạn body phản hồi (report PDF dạng base64 có thể lớn)
const maxResponseBytes = 32 << 20

//go:generate mockgen -source=./client.go -package=aiclient -destination=./client_mock.go Client

// Client hợp đồng với dịch vụ AI
type Client interface {
	ScoreResume(ctx context.Context, pdf []byte, jobDescription string) (*ResumeScore, error)
	GenerateTest(ctx context.Context, resumeText, jobDescription string) (*QuestionSet, error)
	EvaluateTest(ctx context.Context, questions QuestionSet, answers Answers, candidateName string) (*Evaluation, error)
}

// HTTPClient cài đặt Client qua HTTP JSON
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	metrics *metrics.Metrics
	newID   func() string
}

// NewHTTPClient tạo HTTPClient. timeout áp dụng cho từng lần gọi.
func NewHTTPClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *HTTPClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
		metrics: m,
		newID:   shortuuid.New,
	}
}

// ScoreResume gửi CV (PDF) và mô tả công việc, nhận text trích xuất và điểm tương đồng
func (c *HTTPClient) ScoreResume(ctx context.Context, pdf []byte, jobDescription string) (*ResumeScore, error) {
	var resp ResumeScore
	err := c.post(ctx, OpResumeScan, resumeScanRequest{
		PDF:            base64.StdEncoding.EncodeToString(pdf),
		JobDescription: jobDescription,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.ExtractedText == "" {
		return nil, common.WithDetails(common.ErrUpstreamResponse, map[string]string{"op": OpResumeScan, "reason": "missing extractedText"})
	}
	return &resp, nil
}

// GenerateTest sinh bộ câu hỏi từ résumé text và mô tả công việc
func (c *HTTPClient) GenerateTest(ctx context.Context, resumeText, jobDescription string) (*QuestionSet, error) {
	var resp testGenerateResponse
	err := c.post(ctx, OpTestGenerate, testGenerateRequest{
		Resume:         resumeText,
		JobDescription: jobDescription,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success || resp.Questions.IsEmpty() {
		return nil, common.WithDetails(common.ErrUpstreamResponse, map[string]string{"op": OpTestGenerate, "reason": "unsuccessful or empty question set"})
	}
	return &resp.Questions, nil
}

// EvaluateTest chấm bài, trả về điểm, nhận xét và report PDF
func (c *HTTPClient) EvaluateTest(ctx context.Context, questions QuestionSet, answers Answers, candidateName string) (*Evaluation, error) {
	var resp testScanResponse
	err := c.post(ctx, OpTestScan, testScanRequest{
		Questions:     questions,
		Answers:       answers,
		CandidateName: candidateName,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, common.WithDetails(common.ErrUpstreamResponse, map[string]string{"op": OpTestScan, "reason": "evaluation unsuccessful"})
	}
	return &Evaluation{
		FinalScore: resp.FinalScore,
		TestReport: resp.TestReport,
		ReportPDF:  resp.TestReportPDF,
	}, nil
}

// post gửi một request JSON và phân loại lỗi: timeout -> AI_003, không kết nối được -> AI_002,
// status khác 2xx hoặc body sai định dạng -> AI_001
func (c *HTTPClient) post(ctx context.Context, op string, in interface{}, out interface{}) error {
	tid := c.newID()
	log := logger.WithContext(ctx).WithFields(logrus.Fields{"module": "aiclient", "op": op, "ai_request_id": tid})
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(in)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Cannot encode AI request", common.StatusInternalServerError, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+op, bytes.NewReader(payload))
	if err != nil {
		return common.WithDetails(common.ErrUpstreamDown, map[string]string{"op": op})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", tid)

	resp, err := c.http.Do(req)
	if err != nil {
		wrapped := errors.Wrapf(err, "ai %s", op)
		if isTimeout(ctx, err) {
			c.metrics.AICall(op, metrics.OutcomeTimeout, time.Since(start))
			log.WithError(wrapped).Error("❌ [AI] Call timed out")
			return common.WithDetails(common.ErrUpstreamTimeout, map[string]string{"op": op, "requestId": tid})
		}
		c.metrics.AICall(op, metrics.OutcomeError, time.Since(start))
		log.WithError(wrapped).Error("❌ [AI] Service unreachable")
		return common.WithDetails(common.ErrUpstreamDown, map[string]string{"op": op, "requestId": tid})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		wrapped := errors.Wrapf(err, "ai %s: read body", op)
		if isTimeout(ctx, err) {
			c.metrics.AICall(op, metrics.OutcomeTimeout, time.Since(start))
			log.WithError(wrapped).Error("❌ [AI] Call timed out while reading body")
			return common.WithDetails(common.ErrUpstreamTimeout, map[string]string{"op": op, "requestId": tid})
		}
		c.metrics.AICall(op, metrics.OutcomeError, time.Since(start))
		log.WithError(wrapped).Error("❌ [AI] Cannot read response")
		return common.WithDetails(common.ErrUpstreamResponse, map[string]string{"op": op, "requestId": tid})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.AICall(op, metrics.OutcomeError, time.Since(start))
		log.WithField("status", resp.StatusCode).Error("❌ [AI] Unsuccessful response")
		return common.WithDetails(common.ErrUpstreamResponse, map[string]string{
			"op":        op,
			"requestId": tid,
			"status":    fmt.Sprintf("%d", resp.StatusCode),
		})
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.metrics.AICall(op, metrics.OutcomeError, time.Since(start))
		log.WithError(errors.Wrapf(err, "ai %s: decode", op)).Error("❌ [AI] Malformed response")
		return common.WithDetails(common.ErrUpstreamResponse, map[string]string{"op": op, "requestId": tid, "reason": "malformed body"})
	}

	c.metrics.AICall(op, metrics.OutcomeOK, time.Since(start))
	log.WithField("duration_ms", time.Since(start).Milliseconds()).Debug("[AI] Call succeeded")
	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
