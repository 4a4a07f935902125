package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/pkg/apperror"
)

// Policy описывает допустимые типы файлов для конкретного поля формы.
type Policy struct {
	Field      string
	Extensions map[string]string // расширение -> ожидаемое расширение по магическим байтам
	MimeTypes  map[string]bool
}

// ImagePolicy - картинки к вакансиям и товарам.
var ImagePolicy = Policy{
	Field: "image",
	Extensions: map[string]string{
		".jpg":  ".jpg",
		".jpeg": ".jpg",
		".png":  ".png",
		".gif":  ".gif",
		".webp": ".webp",
	},
	MimeTypes: map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	},
}

// ResumePolicy - резюме к откликам (.pdf, .doc, .docx).
var ResumePolicy = Policy{
	Field: "resume",
	Extensions: map[string]string{
		".pdf":  ".pdf",
		".doc":  ".doc",
		".docx": ".docx",
	},
	MimeTypes: map[string]bool{
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	},
}

// FileStorage отвечает за файловое хранилище вложений к заявкам.
type FileStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewFileStorage создаёт файловое хранилище.
func NewFileStorage(rootPath string, maxUploadMB int64) (*FileStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &FileStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Root возвращает корневой каталог хранилища.
func (s *FileStorage) Root() string {
	return s.rootPath
}

// Save проверяет тип файла по расширению и магическим байтам и сохраняет его
// в подкаталог group. Возвращает описание сохранённого файла.
func (s *FileStorage) Save(ctx context.Context, group string, originalName string, r io.Reader, policy Policy) (*models.UploadedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	expectedExt, ok := policy.Extensions[ext]
	if !ok {
		return nil, apperror.Validation(policy.Field, fmt.Sprintf("unsupported %s file extension %q", policy.Field, ext))
	}

	// Читаем заголовок файла для проверки магических байтов
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("storage: не удалось прочитать файл: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, apperror.Validation(policy.Field, fmt.Sprintf("%s file is empty", policy.Field))
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown || !policy.MimeTypes[kind.MIME.Value] {
		return nil, apperror.Validation(policy.Field, fmt.Sprintf("%s file type is not allowed", policy.Field))
	}
	if "."+normalizeExt(kind.Extension) != expectedExt {
		return nil, apperror.Validation(policy.Field, fmt.Sprintf("%s extension %s does not match its content", policy.Field, ext))
	}

	relative, written, err := s.write(group, originalName, io.MultiReader(bytes.NewReader(head), r))
	if err != nil {
		return nil, err
	}

	return &models.UploadedFile{
		FilePath:     filepath.ToSlash(relative),
		FileType:     kind.MIME.Value,
		FileSize:     written,
		OriginalName: sanitizeFilename(originalName),
	}, nil
}

// write атомарно записывает файл через временный .tmp.
func (s *FileStorage) write(group, originalName string, r io.Reader) (string, int64, error) {
	safeName := sanitizeFilename(originalName)
	fileName := fmt.Sprintf("%s_%d%s", uuid.NewString(), time.Now().UnixNano(), strings.ToLower(filepath.Ext(safeName)))

	groupDir := filepath.Join(s.rootPath, sanitizeFilename(group))
	if err := os.MkdirAll(groupDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать каталог: %w", err)
	}

	targetPath := filepath.Join(groupDir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = f.Close()
		_ = os.Remove(tempPath)
		return "", 0, apperror.Validation("file", fmt.Sprintf("file exceeds the %d byte limit", s.maxUploadBytes))
	}

	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return filepath.Join(sanitizeFilename(group), fileName), written, nil
}

// Delete удаляет файл из хранилища.
func (s *FileStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.rootPath, filepath.Clean("/"+relativePath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// normalizeExt сводит jpeg к jpg.
func normalizeExt(ext string) string {
	if ext == "jpeg" {
		return "jpg"
	}
	return ext
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" || name == "." {
		name = "file"
	}
	return name
}
