// Package utility chứa các hàm định dạng dùng chung cho handler và service.
package utility

import (
	"encoding/base64"
	"fmt"
)

// FormatBytes chuyển đổi số bytes thành chuỗi dễ đọc (KB, MB, GB)
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// DataURI mã hóa file thành data URI, rỗng khi không có dữ liệu.
// contentType rỗng thì mặc định application/pdf.
func DataURI(contentType string, data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}
