package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// recipeImageDir is the storage-relative directory for recipe images.
const recipeImageDir = "uploads/recipe"

// ErrNotImage indicates an upload payload that could not be decoded as an image.
var ErrNotImage = errors.New("payload is not a valid image")

// Store writes uploaded files below a configured root directory and hands out
// storage-relative paths.
type Store struct {
	root string
}

// New creates a file store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// RecipeImagePath generates a fresh storage path for a recipe image. The
// stored filename is a random token plus the original file's extension, so
// user-supplied names never reach the filesystem and repeated uploads of the
// same file land on different paths.
func RecipeImagePath(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return filepath.ToSlash(filepath.Join(recipeImageDir, uuid.NewString()+ext))
}

// SaveRecipeImage validates that data decodes as an image and writes it to a
// freshly generated path, which is returned relative to the store root.
func (s *Store) SaveRecipeImage(data []byte, originalName string) (string, error) {
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	relPath := RecipeImagePath(originalName)
	absPath := filepath.Join(s.root, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return relPath, nil
}

// Remove deletes a previously stored file. Missing files are not an error:
// record deletion must not fail on an already-gone image.
func (s *Store) Remove(relPath string) {
	if relPath == "" {
		return
	}
	absPath := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		log.Error("failed to remove stored file", "path", relPath, "error", err)
	}
}
