package publish

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadInstance reads a publish-instance manifest from a JSON file.
func LoadInstance(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseInstance(data)
}

// ParseInstance decodes a publish-instance manifest from raw JSON.
func ParseInstance(data []byte) (*Instance, error) {
	var instance Instance
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if strings.TrimSpace(instance.ProductName) == "" {
		return nil, Wrap(ErrValidation, "manifest", "parse", "productName is required", nil)
	}
	if strings.TrimSpace(instance.ProductType) == "" {
		return nil, Wrap(ErrValidation, "manifest", "parse", "productType is required", nil)
	}
	return &instance, nil
}
