package game

import "path/filepath"

// ResourceConfig 是资源清单的顶层结构，对应 data/config/resources.yaml
//
// 结构示例：
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  card:
//	    fonts:
//	      - id: FONT_MAIN
//	        path: fonts/main.ttf
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"` // 所有资源的基准目录
	Groups   map[string]ResourceGroup `yaml:"groups"`    // 按组名索引的资源组
}

// ResourceGroup 是可以一起预加载的一组相关资源
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
	Sounds []SoundResource `yaml:"sounds"`
	Fonts  []FontResource  `yaml:"fonts"`
}

// ImageResource 单个图片资源定义
type ImageResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"` // 相对 base_path 的路径
}

// SoundResource 单个音频资源定义
type SoundResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
	Loop bool   `yaml:"loop,omitempty"` // 背景音乐为 true，一次性音效为 false
}

// FontResource 单个字体资源定义
type FontResource struct {
	ID   string  `yaml:"id"`
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"` // 默认字号
}

// buildFullPath 拼接基准目录与相对路径
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	return filepath.Join(basePath, relativePath)
}
