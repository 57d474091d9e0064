package config

// Point 表示二维坐标点
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Hitbox 用四个角点（顺时针）定义一个可点击四边形区域
//
// 纸签在场景中带倾斜角摆放，矩形包围盒会把点击误判到蛋糕上，
// 因此命中区域统一用四边形描述。
type Hitbox struct {
	TopLeft     Point `yaml:"topLeft"`
	TopRight    Point `yaml:"topRight"`
	BottomRight Point `yaml:"bottomRight"`
	BottomLeft  Point `yaml:"bottomLeft"`
}

// RectHitbox 构造一个轴对齐矩形命中区域
func RectHitbox(x, y, w, h float64) Hitbox {
	return Hitbox{
		TopLeft:     Point{X: x, Y: y},
		TopRight:    Point{X: x + w, Y: y},
		BottomRight: Point{X: x + w, Y: y + h},
		BottomLeft:  Point{X: x, Y: y + h},
	}
}

// Contains 判断点 (x, y) 是否在四边形内
//
// 使用叉积法：点在所有边的同一侧即在四边形内，边上算命中。
func (hb *Hitbox) Contains(x, y float64) bool {
	edges := []struct{ p1, p2 Point }{
		{hb.TopLeft, hb.TopRight},
		{hb.TopRight, hb.BottomRight},
		{hb.BottomRight, hb.BottomLeft},
		{hb.BottomLeft, hb.TopLeft},
	}

	var sign int
	for i, edge := range edges {
		cross := crossProduct(edge.p1, edge.p2, Point{X: x, Y: y})

		if i == 0 {
			if cross > 0 {
				sign = 1
			} else if cross < 0 {
				sign = -1
			}
			continue
		}

		if cross > 0 && sign < 0 {
			return false
		}
		if cross < 0 && sign > 0 {
			return false
		}
	}

	return true
}

// crossProduct 计算向量 (p2-p1) 与 (p3-p1) 的二维叉积
// 结果 > 0 表示 p3 在 p1->p2 左侧，< 0 在右侧，= 0 在线上
func crossProduct(p1, p2, p3 Point) float64 {
	return (p2.X-p1.X)*(p3.Y-p1.Y) - (p2.Y-p1.Y)*(p3.X-p1.X)
}
