package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("mongo_uri", validateMongoURI)
	_ = Validate.RegisterValidation("mongo_dbname", validateMongoDBName)
	_ = Validate.RegisterValidation("mongo_collection", validateMongoCollection)
}

// validateMongoURI kiểm tra scheme của connection string
func validateMongoURI(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, scheme := range []string{"mongodb://", "mongodb+srv://"} {
		if strings.HasPrefix(value, scheme) && len(value) > len(scheme) {
			return true
		}
	}
	return false
}

// validateMongoDBName kiểm tra tên database theo giới hạn của MongoDB
func validateMongoDBName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || len(value) >= 64 {
		return false
	}
	return !strings.ContainsAny(value, "/\\. \"$\x00")
}

// validateMongoCollection kiểm tra tên collection theo giới hạn của MongoDB
func validateMongoCollection(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || strings.HasPrefix(value, "system.") {
		return false
	}
	return !strings.ContainsAny(value, "$\x00")
}
