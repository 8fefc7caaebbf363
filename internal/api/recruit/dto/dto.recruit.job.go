// Package recruitdto chứa input/output của các API thuộc domain recruit.
package recruitdto

// JobCreateInput dữ liệu tạo tin tuyển dụng
type JobCreateInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	CompanyName string `json:"companyName" validate:"required,max=200"`
	Details     string `json:"details" validate:"required"`
}

// ApplyInput dữ liệu ứng tuyển lấy từ form multipart
type ApplyInput struct {
	Resume      []byte
	ContentType string
	FileName    string
	CoverLetter string
}

// ApplicationStatusOutput kết quả kiểm tra ứng viên đã nộp hồ sơ cho job chưa
type ApplicationStatusOutput struct {
	Applied       bool   `json:"applied"`
	ApplicationID string `json:"applicationId,omitempty"`
	Stage         string `json:"stage,omitempty"`
}

// ApplicantRow một dòng trong danh sách ứng viên của job
type ApplicantRow struct {
	ApplicationID          string   `json:"applicationId"`
	IdentityID             string   `json:"identityId"`
	CandidateName          string   `json:"candidateName"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	Resume                 string   `json:"resume"`
	ResumeFileName         string   `json:"resumeFileName,omitempty"`
	ResumeTextPreview      string   `json:"resumeText"`
	CoverLetter            string   `json:"coverLetter,omitempty"`
	ResumeMatchScore       *float64 `json:"resumeMatchScore"`
	IsEligibleForTest      bool     `json:"isEligibleForTest"`
	IsEligibleForInterview bool     `json:"isEligibleForInterview"`
	TestScore              *float64 `json:"testScore"`
	TestState              string   `json:"testState,omitempty"`
	Stage                  string   `json:"stage"`
	AppliedAt              int64    `json:"appliedAt"`
}
