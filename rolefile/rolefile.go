// Package rolefile loads permkit role records from YAML files and keeps a
// live service in sync with a file on disk.
//
// File format:
//
//	fallback_roles:
//	  - Default
//	roles:
//	  - name: OrderManager
//	    permissions:
//	      - "Orders::Order::*"
//	      - "Orders::Invoice::{Read,Generate}"
//	  - name: Admin
//	    permissions:
//	      - "*"
//
// The fallback_roles key is optional; when absent, applying the file
// leaves the service's fallback roles untouched.
package rolefile

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fernandezvara/permkit"
)

// File is the decoded form of a role file.
type File struct {
	FallbackRoles []string             `yaml:"fallback_roles"`
	Roles         []permkit.RoleRecord `yaml:"roles"`
}

// Parse decodes a role file document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("rolefile: parse: %w", err)
	}
	return &f, nil
}

// Load reads and parses a role file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rolefile: read %s: %w", path, err)
	}
	return Parse(data)
}

// Apply swaps the file's roles into the live service as one clean update.
// A fallback_roles key in the file overrides the service's fallback roles
// in the same swap.
func (f *File) Apply(service *permkit.Service) {
	up := service.Updater().LoadRecords(f.Roles)
	if f.FallbackRoles != nil {
		up.FallbackRoles(f.FallbackRoles...)
	}
	up.Apply()
}

// Source adapts a role file path into a permkit.RecordSource.
type Source struct {
	path string
}

// NewSource creates a RecordSource reading from path on every Load.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load reads the file and returns its role records.
func (s *Source) Load(ctx context.Context) ([]permkit.RoleRecord, error) {
	f, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	return f.Roles, nil
}
