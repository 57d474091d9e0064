package components

// LifetimeComponent 管理实体的生存时限
// 用于自动清理存在时间超过上限的实体（五彩纸屑粒子）
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生存时间（秒）
	CurrentLifetime float64 // 当前已存在时间（秒）
	IsExpired       bool    // 是否已到期
}
