package utility

// Truncate cắt theo rune và thêm "...", limit <= 0 thì giữ nguyên
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
