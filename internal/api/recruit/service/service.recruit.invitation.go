package recruitsvc

import (
	"fmt"
	"time"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvitationClaims nội dung link mời làm bài
type InvitationClaims struct {
	ApplicationID string `json:"applicationId"`
	JobID         string `json:"jobId"`
	jwt.StandardClaims
}

// InvitationSigner ký link mời HS256, hạn của token là hạn làm bài lúc ký
type InvitationSigner struct {
	secret []byte
	now    func() time.Time
}

// NewInvitationSigner tạo InvitationSigner, now nil thì dùng time.Now
func NewInvitationSigner(secret string, now func() time.Time) *InvitationSigner {
	if now == nil {
		now = time.Now
	}
	return &InvitationSigner{secret: []byte(secret), now: now}
}

// Sign ký token cho cặp (hồ sơ, job)
func (s *InvitationSigner) Sign(applicationID, jobID primitive.ObjectID, deadline time.Time) (string, error) {
	claims := InvitationClaims{
		ApplicationID: applicationID.Hex(),
		JobID:         jobID.Hex(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: deadline.Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Cannot sign invitation link", common.StatusInternalServerError, err.Error())
	}
	return signed, nil
}

// Verify như Parse, thêm kiểm tra exp theo đồng hồ của signer
func (s *InvitationSigner) Verify(raw string) (applicationID, jobID primitive.ObjectID, err error) {
	claims, err := s.parse(raw)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return primitive.NilObjectID, primitive.NilObjectID, common.ErrInvitationExpired
	}
	return claims.ids()
}

// Parse chỉ kiểm tra chữ ký. Hạn làm bài do AccessDeadline của bài test quyết định,
// vì chọn lại có thể gia hạn bài sau khi link đã gửi.
func (s *InvitationSigner) Parse(raw string) (applicationID, jobID primitive.ObjectID, err error) {
	claims, err := s.parse(raw)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return claims.ids()
}

func (s *InvitationSigner) parse(raw string) (*InvitationClaims, error) {
	if raw == "" {
		return nil, common.ErrTokenMissing
	}
	claims := &InvitationClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

func (c *InvitationClaims) ids() (applicationID, jobID primitive.ObjectID, err error) {
	applicationID, err = primitive.ObjectIDFromHex(c.ApplicationID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, common.ErrTokenInvalid
	}
	jobID, err = primitive.ObjectIDFromHex(c.JobID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, common.ErrTokenInvalid
	}
	return applicationID, jobID, nil
}
