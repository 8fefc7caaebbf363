package global

import (
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/config"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionNames chứa tên các collection trong MongoDB
type MongoDB_CollectionNames struct {
	Identities            string // Tài khoản người dùng (hr, candidate, admin)
	HRProfiles            string // Hồ sơ HR, 1-1 với identity role hr
	JobPostings           string // Tin tuyển dụng
	CandidateApplications string // Hồ sơ ứng tuyển
	TestInstances         string // Bài test đã sinh cho từng hồ sơ
	TestReports           string // Kết quả chấm bài test
	EmailAudits           string // Nhật ký thông báo gửi ứng viên
}

// Các biến toàn cục
var Validate *validator.Validate                                    // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                   // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                      // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionNames                        // Tên các collection
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections

// DefaultCollectionNames trả về tên collection mặc định
func DefaultCollectionNames() MongoDB_CollectionNames {
	return MongoDB_CollectionNames{
		Identities:            "identities",
		HRProfiles:            "hr_profiles",
		JobPostings:           "job_postings",
		CandidateApplications: "candidate_applications",
		TestInstances:         "test_instances",
		TestReports:           "test_reports",
		EmailAudits:           "email_audits",
	}
}
