package api

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SupportedDocumentExtensions are the file types the document endpoint accepts.
var SupportedDocumentExtensions = []string{".pdf", ".docx", ".txt"}

var fieldMessages = map[string]string{
	"Email.required":               "Please provide your email address",
	"Email.email":                  "Please provide a valid email address",
	"Password.required":            "Password is required",
	"PasswordConfirmation.eqfield": "Passwords must match",
	"FullName.notblank":            "Please provide your full name",
	"Text.notblank":                "Text to summarize is empty.",
	"SummaryLen.min":               fmt.Sprintf("Summary length must be between 1 and %d", MaxSummaryLen),
	"SummaryLen.max":               fmt.Sprintf("Summary length must be between 1 and %d", MaxSummaryLen),
	"FileName.required":            "No file selected.",
	"FileName.docext":              "Only PDF, Word and text files are supported",
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("docext", func(fl validator.FieldLevel) bool {
		return IsSupportedDocument(fl.Field().String())
	})
	return v
}

// IsSupportedDocument reports whether the file name has one of SupportedDocumentExtensions.
func IsSupportedDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range SupportedDocumentExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// validationMessage turns the first failed rule into a message a user can act on.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	fe := fieldErrs[0]
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
