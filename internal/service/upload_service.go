package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/big"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/devlegal/internal/config"
)

// UploadKind 上传入口类型
type UploadKind int

const (
	// UploadKindGeneral 通用上传：图片与文档
	UploadKindGeneral UploadKind = iota
	// UploadKindDocument 文档管理：仅文档
	UploadKindDocument
)

var documentExtensions = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {}, ".txt": {}, ".rtf": {}, ".odt": {},
	".xls": {}, ".xlsx": {}, ".csv": {},
	".ppt": {}, ".pptx": {},
	".zip": {}, ".rar": {}, ".7z": {},
	".md": {}, ".json": {}, ".xml": {}, ".html": {}, ".css": {}, ".js": {},
}

var imageExtensions = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

var randomSuffixLimit = big.NewInt(1_000_000_000)

// StoredFile 已保存文件信息
type StoredFile struct {
	Name         string `json:"name"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}

// DocumentFile 上传目录中的文件
type DocumentFile struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	URL      string    `json:"url"`
}

// UploadService 文件上传服务
type UploadService struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg config.UploadConfig) *UploadService {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		dir = "uploads"
	}
	return &UploadService{dir: dir, maxBytes: cfg.MaxBytes(), now: time.Now}
}

// Dir 上传目录
func (s *UploadService) Dir() string {
	return s.dir
}

// MaxBytes 单文件大小上限
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Save 保存上传文件，文件名为 <字段名>-<毫秒时间戳>-<随机数><小写扩展名>
func (s *UploadService) Save(file *multipart.FileHeader, field string, kind UploadKind) (*StoredFile, error) {
	if file == nil {
		return nil, ErrFileRequired
	}
	if file.Size > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isAllowedUploadExtension(ext, kind) {
		return nil, ErrFileTypeNotAllowed
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if _, ok := imageExtensions[ext]; ok {
		if err := ensureImageContent(src); err != nil {
			return nil, err
		}
	}

	filename, err := s.generateFilename(field, ext)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, err
	}

	savePath := filepath.Join(s.dir, filename)
	dst, err := os.OpenFile(savePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}
	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(savePath)
		return nil, err
	}

	return &StoredFile{
		Name:         filename,
		OriginalName: filepath.Base(file.Filename),
		Size:         written,
		URL:          UploadsURLPath + "/" + filename,
	}, nil
}

// ListDocuments 列出上传目录中的文件（按修改时间倒序）
func (s *UploadService) ListDocuments() ([]DocumentFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []DocumentFile{}, nil
		}
		return nil, err
	}

	files := make([]DocumentFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, DocumentFile{
			Name:     entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
			URL:      UploadsURLPath + "/" + entry.Name(),
		})
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Modified.Equal(files[j].Modified) {
			return files[i].Name < files[j].Name
		}
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// Delete 删除上传目录中的文件；拒绝任何路径穿越
func (s *UploadService) Delete(name string) error {
	if !isPlainFilename(name) {
		return ErrInvalidFilename
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrFileNotFound
		}
		return err
	}
	if info.IsDir() {
		return ErrFileNotFound
	}
	return os.Remove(path)
}

func (s *UploadService) generateFilename(field, ext string) (string, error) {
	suffix, err := rand.Int(rand.Reader, randomSuffixLimit)
	if err != nil {
		return "", err
	}
	prefix := sanitizeFieldName(field)
	return fmt.Sprintf("%s-%d-%s%s", prefix, s.now().UnixMilli(), suffix.String(), ext), nil
}

func isAllowedUploadExtension(ext string, kind UploadKind) bool {
	if ext == "" {
		return false
	}
	if _, ok := documentExtensions[ext]; ok {
		return true
	}
	if kind == UploadKindGeneral {
		_, ok := imageExtensions[ext]
		return ok
	}
	return false
}

// ensureImageContent 图片扩展名必须对应真实图片内容
func ensureImageContent(src multipart.File) error {
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if !strings.HasPrefix(http.DetectContentType(buffer[:n]), "image/") {
		return ErrFileTypeNotAllowed
	}
	return nil
}

func isPlainFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return filepath.Base(name) == name
}

func sanitizeFieldName(field string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(field) {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
