package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword 注册/建号口径：哈希失败退化成空串，
// CheckPassword 对空串必然失败，不把错误往上层传
func HashPassword(pw string) string {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(b)
}

// CheckPassword 比对明文与 bcrypt 哈希（盐在哈希里自带）
func CheckPassword(pw, hashed string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
