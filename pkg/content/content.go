// Package content 负责加载贺卡内容文档
//
// 内容文档是一个 JSON 对象，描述本次贺卡的全部个性化内容：
// 标题、副标题、祝福正文、署名、音乐路径和相册图片路径。
// 文档在启动时加载一次，之后视为只读。
package content

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gonewx/greeting/pkg/embedded"
)

// Document 是解析后的内容文档
//
// 任何字段缺失都按零值处理：对应的界面区域保持空白，
// 不报错（内容缺失属于优雅降级，不是失败）。
type Document struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Message  string   `json:"message"`
	Sender   string   `json:"sender"`
	Music    string   `json:"music"`   // 音乐文件路径
	Gallery  []string `json:"gallery"` // 相册图片路径，保持文档内顺序
}

// LoadError 表示内容文档加载失败
//
// 传输失败、非 2xx 状态码、JSON 解析失败都归入此类。
// 这是整个应用中唯一的致命错误：没有内容就没有贺卡。
type LoadError struct {
	Source string // 请求的来源（路径或 URL）
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("content load failed from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load 加载并解析内容文档
//
// src 为 http(s) URL 时发起单次 GET（不重试），否则按文件路径处理：
// 先读磁盘，再回退到嵌入资源。失败返回 *LoadError。
func Load(src string) (*Document, error) {
	data, err := fetch(src)
	if err != nil {
		return nil, &LoadError{Source: src, Err: err}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Source: src, Err: fmt.Errorf("failed to parse document: %w", err)}
	}

	return &doc, nil
}

// fetch 读取原始文档字节
func fetch(src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := http.Get(src)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(src)
	if err == nil {
		return data, nil
	}

	// 磁盘上没有：回退到嵌入资源
	if embedded.IsInitialized() {
		if embeddedData, embErr := embedded.ReadFile(src); embErr == nil {
			return embeddedData, nil
		}
	}
	return nil, err
}
