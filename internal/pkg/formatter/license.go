package formatter

import (
	"fmt"

	"github.com/unidoc/unioffice/common/license"
)

// SetupDOCXLicense registers the metered key required by unioffice to save documents.
func SetupDOCXLicense(apiKey string) error {
	if apiKey == "" {
		return nil
	}
	if err := license.SetMeteredKey(apiKey); err != nil {
		return fmt.Errorf("set unioffice license: %w", err)
	}
	return nil
}
