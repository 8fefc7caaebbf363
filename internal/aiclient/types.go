package aiclient

// ResumeScore kết quả chấm CV
type ResumeScore struct {
	ExtractedText   string  `json:"extractedText"`
	JobDescription  string  `json:"jobDescription"`
	SimilarityScore float64 `json:"similarityScore"`
}

// MCQ câu trắc nghiệm do AI sinh, kèm đáp án
type MCQ struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// QuestionSet bộ câu hỏi đúng định dạng của dịch vụ AI
type QuestionSet struct {
	MCQs       []MCQ    `json:"mcqs"`
	Pseudocode []string `json:"pseudocode"`
	Theory     []string `json:"theory"`
}

// IsEmpty true khi không có câu hỏi nào
func (q QuestionSet) IsEmpty() bool {
	return len(q.MCQs) == 0 && len(q.Pseudocode) == 0 && len(q.Theory) == 0
}

// Answers câu trả lời gửi đi chấm
type Answers struct {
	MCQs       []string `json:"mcqs"`
	Pseudocode []string `json:"pseudocode"`
	Theory     []string `json:"theory"`
}

// Evaluation kết quả chấm bài
type Evaluation struct {
	FinalScore float64
	TestReport string
	ReportPDF  []byte
}

type resumeScanRequest struct {
	PDF            string `json:"pdf"`
	JobDescription string `json:"jobDescription"`
}

type testGenerateRequest struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"jobDescription"`
}

type testGenerateResponse struct {
	Success   bool        `json:"success"`
	Questions QuestionSet `json:"questions"`
}

type testScanRequest struct {
	Questions     QuestionSet `json:"questions"`
	Answers       Answers     `json:"answers"`
	CandidateName string      `json:"candidateName"`
}

type testScanResponse struct {
	Success       bool    `json:"success"`
	FinalScore    float64 `json:"finalScore"`
	TestReport    string  `json:"testReport"`
	TestReportPDF []byte  `json:"testReportPdf"`
}
