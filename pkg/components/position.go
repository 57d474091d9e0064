// Package components 定义纯数据组件
//
// 组件不包含方法，全部行为在 systems 包的对应系统里实现。
package components

// PositionComponent 实体的场景坐标（逻辑像素）
type PositionComponent struct {
	X float64
	Y float64
}
