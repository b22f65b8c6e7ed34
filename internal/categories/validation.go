package categories

import (
	"strings"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.RequiredField("name")
	}
	return name, nil
}

func validateID(id int64) error {
	if id <= 0 {
		return shared.RequiredField("_id")
	}
	return nil
}
