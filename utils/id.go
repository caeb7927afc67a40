package utils

import (
	"github.com/google/uuid"
)

// GenerateID 生成调用ID
func GenerateID() string {
	return uuid.NewString()
}
