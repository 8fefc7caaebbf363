// Package notification ghi nhật ký và gửi thông báo cho ứng viên.
// Mọi lỗi ở đây chỉ được log, không làm hỏng thao tác pipeline đã thành công.
package notification

import (
	"context"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notifier ghi EmailAuditRecord rồi gửi mail nếu SMTP được cấu hình
type Notifier struct {
	audits AuditStore
	sender Sender
}

// NewNotifier tạo Notifier. sender nil thì chỉ ghi nhật ký.
func NewNotifier(audits AuditStore, sender Sender) *Notifier {
	n := &Notifier{audits: audits}
	// Tránh interface khác nil bọc con trỏ nil
	if s, ok := sender.(*SMTPSender); !ok || s != nil {
		n.sender = sender
	}
	return n
}

// Notify gửi thông báo. Trả về bản ghi đã lưu, nil nếu không lưu được.
func (n *Notifier) Notify(ctx context.Context, msg Message) *EmailAuditRecord {
	if n == nil {
		return nil
	}
	log := logger.WithContext(ctx).WithFields(logrus.Fields{
		"module":         "notification",
		"application_id": msg.ApplicationID.Hex(),
		"type":           string(msg.Type),
	})

	record := EmailAuditRecord{
		CandidateApplicationID: msg.ApplicationID,
		Recipient:              msg.Recipient,
		Subject:                msg.Subject,
		Message:                msg.Body,
		Type:                   msg.Type,
	}

	if n.sender != nil && msg.Recipient != "" {
		if err := n.sender.Send(ctx, msg.Recipient, msg.Subject, msg.Body); err != nil {
			record.Error = err.Error()
			log.WithError(err).Warn("❌ [NOTIFY] Mail delivery failed")
		} else {
			record.Delivered = true
		}
	}

	if n.audits == nil {
		return &record
	}
	saved, err := n.audits.Insert(ctx, record)
	if err != nil {
		log.WithError(err).Error("❌ [NOTIFY] Cannot write email audit")
		return nil
	}
	log.WithField("delivered", saved.Delivered).Info("✅ [NOTIFY] Notification recorded")
	return saved
}

// History nhật ký thông báo của một hồ sơ
func (n *Notifier) History(ctx context.Context, applicationID primitive.ObjectID) ([]EmailAuditRecord, error) {
	return n.audits.ListByApplication(ctx, applicationID)
}
