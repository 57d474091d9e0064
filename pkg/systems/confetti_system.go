// Package systems 实现场景的逐帧更新逻辑
//
// 每个系统围绕一类组件工作，由场景在 Update/Draw 中按序调用。
package systems

import (
	"log"
	"math/rand"
	"reflect"

	"github.com/gonewx/greeting/internal/anim"
	"github.com/gonewx/greeting/pkg/components"
	"github.com/gonewx/greeting/pkg/config"
	"github.com/gonewx/greeting/pkg/ecs"
)

// confettiQuery 查询五彩纸屑实体所需的组件类型
var confettiQuery = []reflect.Type{
	reflect.TypeOf(&components.ConfettiComponent{}),
	reflect.TypeOf(&components.PositionComponent{}),
	reflect.TypeOf(&components.LifetimeComponent{}),
}

// ConfettiSystem 管理五彩纸屑爆发：生成、逐帧更新、到期清理
type ConfettiSystem struct {
	entityManager *ecs.EntityManager
	cfg           config.ConfettiConfig
}

// NewConfettiSystem 创建五彩纸屑系统
func NewConfettiSystem(em *ecs.EntityManager, cfg config.ConfettiConfig) *ConfettiSystem {
	return &ConfettiSystem{
		entityManager: em,
		cfg:           cfg,
	}
}

// SpawnBurst 在矩形区域内生成一次爆发，返回生成的粒子数
//
// 每片纸屑获得：区域内均匀随机位置、调色板中均匀随机颜色、
// 固定范围内随机的起始延迟与下落时长。用户偏好减少动态效果时
// 整个爆发被跳过（返回 0）。
func (s *ConfettiSystem) SpawnBurst(x, y, w, h float64, reducedMotion bool) int {
	if reducedMotion {
		log.Printf("[Confetti] reduced motion requested, skipping burst")
		return 0
	}

	palette := s.cfg.PaletteColors()

	for i := 0; i < s.cfg.Count; i++ {
		id := s.entityManager.CreateEntity()

		s.entityManager.AddComponent(id, &components.PositionComponent{
			X: x + rand.Float64()*w,
			Y: y + rand.Float64()*h,
		})
		s.entityManager.AddComponent(id, &components.ConfettiComponent{
			VelocityX:     anim.RandomInRange(-40, 40),
			VelocityY:     anim.RandomInRange(80, 160),
			Rotation:      rand.Float64() * 360,
			RotationSpeed: anim.RandomInRange(-180, 180),
			Color:         palette[rand.Intn(len(palette))],
			Size:          anim.RandomInRange(6, 12),
			Alpha:         1.0,
			Delay:         anim.RandomInRange(s.cfg.MinDelay, s.cfg.MaxDelay),
			Duration:      anim.RandomInRange(s.cfg.MinDuration, s.cfg.MaxDuration),
			AlphaKeyframes: []anim.Keyframe{
				{Time: 0, Value: 1},
				{Time: 0.7, Value: 1},
				{Time: 1, Value: 0},
			},
			AlphaInterp: anim.InterpLinear,
		})
		s.entityManager.AddComponent(id, &components.LifetimeComponent{
			MaxLifetime: s.cfg.LifetimeSec,
		})
	}

	log.Printf("[Confetti] spawned %d particles", s.cfg.Count)
	return s.cfg.Count
}

// Update 推进所有纸屑并清理到期实体
// deltaTime 是自上一帧以来的时间（秒）
func (s *ConfettiSystem) Update(deltaTime float64) {
	for _, id := range s.entityManager.GetEntitiesWith(confettiQuery...) {
		lifeComp, _ := s.entityManager.GetComponent(id, confettiQuery[2])
		life := lifeComp.(*components.LifetimeComponent)

		life.CurrentLifetime += deltaTime
		if life.CurrentLifetime >= life.MaxLifetime {
			life.IsExpired = true
			s.entityManager.DestroyEntity(id)
			continue
		}

		confComp, _ := s.entityManager.GetComponent(id, confettiQuery[0])
		conf := confComp.(*components.ConfettiComponent)
		conf.Age += deltaTime

		// 延迟期内纸屑不运动
		active := conf.Age - conf.Delay
		if active <= 0 {
			continue
		}
		if active > conf.Duration {
			active = conf.Duration
		} else {
			posComp, _ := s.entityManager.GetComponent(id, confettiQuery[1])
			pos := posComp.(*components.PositionComponent)
			pos.X += conf.VelocityX * deltaTime
			pos.Y += conf.VelocityY * deltaTime
			conf.Rotation += conf.RotationSpeed * deltaTime
		}

		progress := active / conf.Duration
		conf.Alpha = anim.Evaluate(conf.AlphaKeyframes, progress, conf.AlphaInterp)
	}

	// 本系统是这组实体的唯一生产者，清理放在自己的帧末
	s.entityManager.RemoveMarkedEntities()
}

// ActiveCount 返回当前存活的纸屑数量
func (s *ConfettiSystem) ActiveCount() int {
	return len(s.entityManager.GetEntitiesWith(confettiQuery...))
}
