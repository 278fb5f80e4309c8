// Package embedded 提供嵌入配置数据的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让 config 包可以读取嵌入的 data/ 目录。
//
// 未调用 Init() 时，或路径不以 "data/" 开头时，直接从磁盘读取。
// 测试使用 t.TempDir() 中的文件，走的就是磁盘路径。
package embedded

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      embed.FS
	initialized bool
)

// Init 初始化 embed.FS 变量
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data embed.FS) {
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除 "./" 前缀（embed.FS 使用正斜杠）
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// useEmbedded 判断该路径是否应从嵌入文件系统读取
func useEmbedded(path string) bool {
	return initialized && strings.HasPrefix(path, "data/")
}

// ReadFile 读取文件内容
// "data/" 前缀且已初始化时从 embed.FS 读取，否则读取磁盘文件
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)
	if useEmbedded(path) {
		return fs.ReadFile(dataFS, path)
	}
	return os.ReadFile(filepath.FromSlash(path))
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	path = normalize(path)
	if useEmbedded(path) {
		_, err := fs.Stat(dataFS, path)
		return err == nil
	}
	_, err := os.Stat(filepath.FromSlash(path))
	return err == nil
}

// Join 拼接目录与文件名，结果始终使用正斜杠
// 这样 "data" + "units.yaml" 可以命中嵌入文件系统
func Join(dir, name string) string {
	return normalize(filepath.ToSlash(filepath.Join(dir, name)))
}
