package validator

import (
	"fmt"
	"strings"

	"github.com/futig/flowcraft-backend/internal/entity"
)

// ValidateStartSession validates StartSessionRequest
func ValidateStartSession(req *entity.StartSessionRequest) error {
	if strings.TrimSpace(req.Idea) == "" {
		return fmt.Errorf("%w: idea", entity.ErrMissingField)
	}

	return nil
}

// ValidateExportFormat validates the requested export format
func ValidateExportFormat(format entity.ResultFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: format must be one of: markdown, docx, pdf", entity.ErrInvalidFormat)
	}

	return nil
}
