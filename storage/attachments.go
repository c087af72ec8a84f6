package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/BerniceZTT/feedback_end/utils"
)

// whitespacePattern 文件名中的连续空白折叠为单个连字符
var whitespacePattern = regexp.MustCompile(`\s+`)

// SanitizeFileName 清理上传文件的原始文件名
func SanitizeFileName(name string) string {
	// 去掉路径部分，只保留文件名
	name = filepath.Base(name)
	return whitespacePattern.ReplaceAllString(name, "-")
}

// DiskStore 基于本地文件系统的附件存储
// 生成的文件名为 毫秒时间戳-清理后的原始文件名
type DiskStore struct {
	dir      string
	initOnce sync.Once
	initErr  error
}

// NewDiskStore 创建附件存储，目录在首次写入时才创建
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Dir 返回存储目录
func (s *DiskStore) Dir() string {
	return s.dir
}

// Store 保存附件内容并返回生成的文件名
func (s *DiskStore) Store(originalName string, r io.Reader) (string, error) {
	s.initOnce.Do(func() {
		s.initErr = os.MkdirAll(s.dir, 0o755)
		if s.initErr == nil {
			utils.Logger.Info().Str("dir", s.dir).Msg("附件目录已就绪")
		}
	})
	if s.initErr != nil {
		return "", fmt.Errorf("创建附件目录失败: %w", s.initErr)
	}

	safe := SanitizeFileName(originalName)
	millis := time.Now().UnixMilli()

	// 同一毫秒内的同名写入会命中 O_EXCL，顺延一毫秒重试
	for attempt := 0; attempt < 10; attempt++ {
		filename := fmt.Sprintf("%d-%s", millis+int64(attempt), safe)

		f, err := os.OpenFile(filepath.Join(s.dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("创建附件文件失败: %w", err)
		}

		if _, err := io.Copy(f, r); err != nil {
			f.Close()
			os.Remove(filepath.Join(s.dir, filename))
			return "", fmt.Errorf("写入附件失败: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("关闭附件文件失败: %w", err)
		}

		utils.Logger.Info().Str("filename", filename).Msg("附件保存成功")
		return filename, nil
	}

	return "", fmt.Errorf("附件文件名冲突: %s", safe)
}
