package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register installs the custom tags on gin's validator engine.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return RegisterOn(v)
}

// RegisterOn installs the custom tags on v.
func RegisterOn(v *validator.Validate) error {
	return v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "M", "F":
			return true
		}
		return false
	})
}

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s wajib diisi", field)
	case "email":
		return fmt.Sprintf("%s harus berupa email yang valid", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s minimal %s karakter", field, fe.Param())
		}
		return fmt.Sprintf("%s minimal %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s maksimal %s karakter", field, fe.Param())
		}
		return fmt.Sprintf("%s maksimal %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s minimal %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s maksimal %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s harus berformat YYYY-MM-DD", field)
	case "numeric":
		return fmt.Sprintf("%s harus berupa angka", field)
	case "gender":
		return fmt.Sprintf("%s harus M atau F", field)
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s tidak valid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Username":     "Username",
		"Email":        "Email",
		"Password":     "Password",
		"Name":         "Nama",
		"NationalID":   "NIK",
		"PostingID":    "Lowongan",
		"Gender":       "Jenis kelamin",
		"DateOfBirth":  "Tanggal lahir",
		"Address":      "Alamat",
		"Phone":        "Nomor telepon",
		"University":   "Universitas",
		"Major":        "Jurusan",
		"GPA":          "IPK",
		"Title":        "Posisi",
		"Description":  "Deskripsi",
		"DepartmentID": "Departemen",
		"OpenDate":     "Tanggal mulai",
		"CloseDate":    "Tanggal selesai",
		"Status":       "Status",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
