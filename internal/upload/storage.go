package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxExtLength = 10

var extPattern = regexp.MustCompile(`^\.[a-z0-9]+$`)

// Storage keeps uploaded files in a local directory served under URLPrefix.
type Storage struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func New(dir, urlPrefix string) (*Storage, error) {
	if dir == "" {
		return nil, errors.New("upload dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &Storage{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		now:       time.Now,
	}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) URLPrefix() string {
	return s.urlPrefix
}

// fileName builds <unixMillis>-<random><ext>. Extensions that are not plain
// alphanumerics are dropped.
func (s *Storage) fileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if len(ext) > maxExtLength || !extPattern.MatchString(ext) {
		ext = ""
	}

	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + random + ext
}

// Save copies r into a new file and returns its public URL.
func (s *Storage) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := s.fileName(originalName)
	fullPath := filepath.Join(s.dir, name)

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return path.Join(s.urlPrefix, name), nil
}
