// Package templates resolves document types to DOCX template files through
// the template registry.
package templates

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/pkg/registry"
)

const defaultRegistryTTL = time.Minute

// Loader is what the workers need from the store.
type Loader interface {
	Load(ctx context.Context, documentType string) ([]byte, error)
}

// Store reads templates from Dir. The registry is cached for RegistryTTL;
// template bytes are read from disk on every call so edited templates are
// picked up without a restart.
type Store struct {
	dir          string
	registryPath string
	ttl          time.Duration
	logger       logger.Logger

	mu       sync.RWMutex
	registry *registry.TemplateRegistry
	loadedAt time.Time
}

func NewStore(dir, registryPath string, ttl time.Duration, log logger.Logger) *Store {
	if ttl <= 0 {
		ttl = defaultRegistryTTL
	}
	return &Store{
		dir:          dir,
		registryPath: registryPath,
		ttl:          ttl,
		logger:       log.WithFields(map[string]interface{}{"component": "template-store"}),
	}
}

// Path returns the template file for documentType.
func (s *Store) Path(documentType string) (string, error) {
	reg, err := s.loadRegistry()
	if err != nil {
		return "", apperrors.NewTemplateNotFoundError(documentType, s.registryPath)
	}
	entry, ok := reg.Lookup(documentType)
	if !ok || entry.Status == registry.StatusRetired {
		return "", apperrors.NewTemplateNotFoundError(documentType, "not registered")
	}
	return filepath.Join(s.dir, entry.File), nil
}

func (s *Store) Load(ctx context.Context, documentType string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.Path(documentType)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("Template file unreadable", map[string]interface{}{
			"documentType": documentType,
			"path":         path,
			"error":        err.Error(),
		})
		return nil, apperrors.NewTemplateNotFoundError(documentType, path)
	}
	return data, nil
}

func (s *Store) loadRegistry() (*registry.TemplateRegistry, error) {
	s.mu.RLock()
	if s.registry != nil && time.Since(s.loadedAt) < s.ttl {
		reg := s.registry
		s.mu.RUnlock()
		return reg, nil
	}
	s.mu.RUnlock()

	reg, err := registry.LoadRegistry(s.registryPath)
	if err != nil {
		s.logger.Error("Failed to load template registry", map[string]interface{}{
			"path":  s.registryPath,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("load template registry: %w", err)
	}

	s.mu.Lock()
	s.registry = reg
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return reg, nil
}
