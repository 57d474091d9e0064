package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 管理贺卡的音乐播放
//
// 整个应用只有一条音乐轨（来自内容文档），由本管理器独占：
// 只有吹蜡烛这一个用户手势允许启动播放，之后只有静音开关和
// 窗口最小化的暂停/恢复会触碰播放器。播放失败静默降级——音乐
// 不响，静音控件保持可用，不打扰用户。
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager

	currentMusic *audio.Player
	musicPath    string
	started      bool
	pausedByApp  bool // 因窗口最小化而暂停
}

// NewAudioManager 创建音频管理器
// settingsManager 可为 nil（使用默认音量，不持久化静音状态）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
	}
}

// StartMusic 启动音乐播放（循环）
//
// 这是唯一允许的播放启动点，必须由用户手势触发。重复调用是
// 无操作。加载或解码失败只记录日志并返回 false。
func (am *AudioManager) StartMusic(path string) bool {
	if am.started {
		return true
	}
	if path == "" {
		log.Printf("[AudioManager] No music configured, skipping playback")
		return false
	}

	player, err := am.resourceManager.LoadMusic(path)
	if err != nil {
		log.Printf("[AudioManager] Warning: failed to load music %s: %v", path, err)
		return false
	}

	am.currentMusic = player
	am.musicPath = path
	am.started = true
	am.applyVolume()
	player.Play()

	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", path, am.effectiveVolume())
	return true
}

// IsMusicStarted 返回音乐是否已经启动过
func (am *AudioManager) IsMusicStarted() bool {
	return am.started
}

// PauseMusic 暂停播放（窗口最小化时调用，可重复）
func (am *AudioManager) PauseMusic() {
	if am.currentMusic != nil && am.currentMusic.IsPlaying() {
		am.currentMusic.Pause()
		am.pausedByApp = true
	}
}

// ResumeMusic 恢复因最小化暂停的播放（可重复）
// 用户主动静音的状态不会被恢复覆盖
func (am *AudioManager) ResumeMusic() {
	if am.currentMusic != nil && am.pausedByApp {
		am.pausedByApp = false
		am.currentMusic.Play()
	}
}

// SetMuted 设置静音并立即生效
func (am *AudioManager) SetMuted(muted bool) {
	if am.settingsManager != nil {
		am.settingsManager.SetMuted(muted)
	}
	am.applyVolume()
	log.Printf("[AudioManager] Muted: %v", muted)
}

// ToggleMute 切换静音，返回切换后的状态
func (am *AudioManager) ToggleMute() bool {
	muted := !am.IsMuted()
	am.SetMuted(muted)
	return muted
}

// IsMuted 返回当前静音状态
func (am *AudioManager) IsMuted() bool {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().Muted
	}
	return false
}

// SetMusicVolume 设置音量并立即应用
func (am *AudioManager) SetMusicVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetMusicVolume(volume)
	}
	am.applyVolume()
}

// applyVolume 将静音与音量设置应用到播放器
func (am *AudioManager) applyVolume() {
	if am.currentMusic == nil {
		return
	}
	if am.IsMuted() {
		am.currentMusic.SetVolume(0)
		return
	}
	am.currentMusic.SetVolume(am.effectiveVolume())
}

// effectiveVolume 返回设置中的音量（无设置管理器时用默认值）
func (am *AudioManager) effectiveVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return 0.7
}
