package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // 注册 JPEG 解码器
	_ "image/png"  // 注册 PNG 解码器
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonewx/greeting/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"gopkg.in/yaml.v3"
)

// ResourceManager 集中管理图片、音频和字体资源
//
// 缓存保证同一资源只加载一次。非并发安全：除 DecodeImageAsync
// 外，所有方法都必须在游戏循环线程上调用。相册照片与音乐是用户
// 提供的文件，缺失或损坏时调用方按装饰性资源降级处理。
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image
	audioCache    map[string]*audio.Player
	audioContext  *audio.Context
	fontFaceCache map[string]*text.GoTextFace
	fontSrcCache  map[string]*text.GoTextFaceSource

	// YAML 资源清单
	config      *ResourceConfig
	resourceMap map[string]string // 资源 ID -> 完整路径
}

// NewResourceManager 创建资源管理器
// audioContext 需在启动时以 48000 Hz 创建一次
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		audioCache:    make(map[string]*audio.Player),
		audioContext:  audioContext,
		fontFaceCache: make(map[string]*text.GoTextFace),
		fontSrcCache:  make(map[string]*text.GoTextFaceSource),
		resourceMap:   make(map[string]string),
	}
}

// readFile 读取资源文件：磁盘优先，嵌入资源兜底
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if embedded.IsInitialized() {
		if embeddedData, embErr := embedded.ReadFile(path); embErr == nil {
			return embeddedData, nil
		}
	}
	return nil, err
}

// LoadResourceConfig 加载 YAML 资源清单并建立 ID -> 路径映射
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := readFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}

	rm.config = &cfg
	rm.buildResourceMap()
	log.Printf("[ResourceManager] Loaded resource config: %d groups, %d resources",
		len(cfg.Groups), len(rm.resourceMap))
	return nil
}

// buildResourceMap 将清单展开为 ID -> 完整路径映射
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	if rm.config == nil {
		return
	}
	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			rm.resourceMap[img.ID] = buildFullPath(rm.config.BasePath, img.Path)
		}
		for _, snd := range group.Sounds {
			rm.resourceMap[snd.ID] = buildFullPath(rm.config.BasePath, snd.Path)
		}
		for _, fnt := range group.Fonts {
			rm.resourceMap[fnt.ID] = buildFullPath(rm.config.BasePath, fnt.Path)
		}
	}
}

// ResourcePath 按资源 ID 查找完整路径
func (rm *ResourceManager) ResourcePath(id string) (string, bool) {
	path, ok := rm.resourceMap[id]
	return path, ok
}

// LoadImage 加载并缓存图片（PNG/JPEG）
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cached, exists := rm.imageCache[path]; exists {
		return cached, nil
	}

	img, err := decodeImageFile(path)
	if err != nil {
		return nil, err
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage 返回已缓存的图片，未加载时返回 nil
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// CacheImage 将外部解码完成的图片放入缓存
// 配合 DecodeImageAsync 使用：解码在后台，进缓存在游戏循环线程
func (rm *ResourceManager) CacheImage(path string, img *ebiten.Image) {
	rm.imageCache[path] = img
}

// decodeImageFile 读取并解码图片文件为 image.Image
func decodeImageFile(path string) (image.Image, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// AsyncImage 是异步解码的结果
type AsyncImage struct {
	Path string
	Img  image.Image // 解码失败时为 nil
	Err  error
}

// DecodeImageAsync 在后台 goroutine 解码图片
//
// 只做纯解码，不触碰图形资源；调用方在游戏循环里收到结果后用
// ebiten.NewImageFromImage 上传并通过 CacheImage 缓存。照片预载
// 失败不是错误路径的一部分：调用方收到 Err 后跳过相关动画即可。
func (rm *ResourceManager) DecodeImageAsync(path string) <-chan AsyncImage {
	ch := make(chan AsyncImage, 1)
	go func() {
		img, err := decodeImageFile(path)
		ch <- AsyncImage{Path: path, Img: img, Err: err}
		close(ch)
	}()
	return ch
}

// LoadMusic 加载背景音乐（MP3/OGG），包装为无限循环流
func (rm *ResourceManager) LoadMusic(path string) (*audio.Player, error) {
	return rm.loadAudio(path, true)
}

// LoadSound 加载一次性音效（MP3/OGG），不循环
func (rm *ResourceManager) LoadSound(path string) (*audio.Player, error) {
	return rm.loadAudio(path, false)
}

// GetAudioPlayer 返回已缓存的音频播放器，未加载时返回 nil
func (rm *ResourceManager) GetAudioPlayer(path string) *audio.Player {
	return rm.audioCache[path]
}

// loadAudio 解码音频并创建播放器
// 整个文件读入内存，避免流式播放期间持有文件句柄
func (rm *ResourceManager) loadAudio(path string, loop bool) (*audio.Player, error) {
	if cached, exists := rm.audioCache[path]; exists {
		return cached, nil
	}

	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file %s: %w", path, err)
	}
	reader := bytes.NewReader(data)

	var stream interface {
		io.ReadSeeker
		Length() int64
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		decoded, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		stream = decoded
	case ".ogg":
		decoded, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		stream = decoded
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}

	var source io.Reader = stream
	if loop {
		source = audio.NewInfiniteLoop(stream, stream.Length())
	}

	player, err := rm.audioContext.NewPlayer(source)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// LoadFont 加载 TTF 字体并缓存指定字号的字面
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	key := fmt.Sprintf("%s_%.1f", path, size)
	if cached, exists := rm.fontFaceCache[key]; exists {
		return cached, nil
	}

	src, exists := rm.fontSrcCache[path]
	if !exists {
		data, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open font file %s: %w", path, err)
		}
		src, err = text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
		}
		rm.fontSrcCache[path] = src
	}

	face := &text.GoTextFace{Source: src, Size: size}
	rm.fontFaceCache[key] = face
	return face, nil
}

// LoadResourceGroup 预加载清单中一个资源组
//
// 单个资源加载失败只记录日志不中断：所有清单资源都是装饰性的，
// 缺失时对应元素保持空白。组名不存在才返回错误。
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded")
	}
	group, ok := rm.config.Groups[groupName]
	if !ok {
		return fmt.Errorf("unknown resource group: %s", groupName)
	}

	for _, img := range group.Images {
		if _, err := rm.LoadImage(buildFullPath(rm.config.BasePath, img.Path)); err != nil {
			log.Printf("[ResourceManager] Warning: image %s: %v", img.ID, err)
		}
	}
	for _, snd := range group.Sounds {
		path := buildFullPath(rm.config.BasePath, snd.Path)
		var err error
		if snd.Loop {
			_, err = rm.LoadMusic(path)
		} else {
			_, err = rm.LoadSound(path)
		}
		if err != nil {
			log.Printf("[ResourceManager] Warning: sound %s: %v", snd.ID, err)
		}
	}
	for _, fnt := range group.Fonts {
		if _, err := rm.LoadFont(buildFullPath(rm.config.BasePath, fnt.Path), fnt.Size); err != nil {
			log.Printf("[ResourceManager] Warning: font %s: %v", fnt.ID, err)
		}
	}

	log.Printf("[ResourceManager] Preloaded resource group %q", groupName)
	return nil
}
