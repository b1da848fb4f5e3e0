package penguin

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/geom"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Body names and name prefixes.
const (
	PlayerName     = "penguin"
	platformPrefix = "platform"
	grassPrefix    = "grass"
	cratePrefix    = "crate"
	spiderPrefix   = "spider"
)

// Scratch keys.
const (
	keyZoom    = "zoom"
	keyHealth  = "health"
	keyHurt    = "hurt"
	keyDucking = "ducking"
	keyHome    = "x-index"
)

// Level layout, in world units.
var (
	playerSpawn = geom.V(1700, -900)
	killPlaneY  = 3000.0
)

const (
	platformCount  = 5
	platformTop    = -100.0
	platformBottom = 400.0
	firstCrate     = 8
	lastCrate      = 19
	spiderCount    = 3
)

// kind returns the name prefix that identifies what a body is.
func kind(name string) string {
	prefix, _, _ := strings.Cut(name, "-")
	return prefix
}

func (g *Game) newPlayer() *physics.Body {
	p := g.cfg.Player
	b := physics.NewBody(
		geom.R(0, 0, 315, 480),
		geom.R(playerSpawn.X, playerSpawn.Y, 90, 140),
		[]geom.Rect{geom.R(25, 20, 45, 88)},
	)
	b.Name = PlayerName
	b.Mass = p.Mass
	b.Elasticity = p.Elasticity
	b.Friction = p.GroundFriction
	b.SetScratch(keyZoom, g.cfg.Camera.DefaultZoom)
	b.SetScratch(keyHealth, float64(p.Health))
	b.Tick = g.playerTick
	b.Collide = playerCollide
	b.Draw = playerDraw
	return b
}

func (g *Game) playerTick(a *physics.Body, others physics.Bodies) {
	p := g.cfg.Player
	in := g.controls

	switch {
	case in.zoomIn:
		a.SetScratch(keyZoom, a.ScratchOr(keyZoom, g.cfg.Camera.DefaultZoom)*g.cfg.Camera.ZoomStep)
	case in.zoomOut:
		a.SetScratch(keyZoom, a.ScratchOr(keyZoom, g.cfg.Camera.DefaultZoom)/g.cfg.Camera.ZoomStep)
	case in.recenter:
		a.SetScratch(keyZoom, g.cfg.Camera.DefaultZoom)
	}
	if in.respawn {
		a.Detach(others)
		a.Pos = playerSpawn
		a.Vel = geom.Vec{}
	}
	if a.ScratchOr(keyHurt, 0) > 0 {
		a.AddScratch(keyHurt, -1)
	}

	if in.duck {
		a.Params.Rotation = math.Pi / 2
		if a.ScratchOr(keyDucking, 0) == 0 {
			a.Params.Size = geom.V(a.Params.Size.Y, a.Params.Size.X)
			a.Vel.X *= p.SlideBoost
			a.SetScratch(keyDucking, 1)
		}
		a.Friction = p.SlideFriction
	} else {
		a.Params.Rotation = 0
		if a.ScratchOr(keyDucking, 0) != 0 {
			a.Params.Size = geom.V(a.Params.Size.Y, a.Params.Size.X)
			a.SetScratch(keyDucking, 0)
		}
		a.Friction = p.GroundFriction

		switch {
		case in.left:
			a.Vel.X -= runAccel(a, a.Vel.X < 0, p.GroundAccel, p.AirAccel)
			a.Params.FlipX = false
		case in.right:
			a.Vel.X += runAccel(a, a.Vel.X > 0, p.GroundAccel, p.AirAccel)
			a.Params.FlipX = true
		}
	}

	if in.jump && a.IsAttached() {
		a.Vel.Y = -p.JumpImpulse
	}
}

// runAccel is the full push on the ground or when turning around in the air,
// and the weaker air push when already moving that way.
func runAccel(a *physics.Body, sameWay bool, ground, air float64) float64 {
	if !a.IsAttached() && sameWay {
		return air
	}
	return ground
}

func playerCollide(axis geom.Axis, a, b *physics.Body, inter geom.Rect) physics.Outcome {
	if axis == geom.AxisX && a.RestsOn(b.Name) {
		return physics.FlatOutcome
	}
	if b.Collide != nil {
		return b.Collide(axis, b, a, inter)
	}
	return physics.DefaultCollide(axis, a, b, inter)
}

// playerDraw blinks the penguin while it is invulnerable.
func playerDraw(a *physics.Body) bool {
	hurt := a.ScratchOr(keyHurt, 0)
	return hurt == 0 || int(hurt)/4%2 == 0
}

func (g *Game) newPlatform(i int) *physics.Body {
	b := physics.NewBody(
		geom.R(0, 100, 400, 120),
		geom.R(3000+480*float64(i), 300*float64(i), 400, 120),
		[]geom.Rect{geom.R(0, 60, 400, 60)},
	)
	b.Name = fmt.Sprintf("%s-%d", platformPrefix, i)
	b.Mass = 1e8
	b.Elasticity = 0
	b.Tick = platformTick
	b.Collide = platformCollide
	return b
}

// platformTick runs the lift cycle: a slow climb to the top, then a fall that
// speeds up until the bottom stop.
func platformTick(a *physics.Body, others physics.Bodies) {
	a.Detach(others)
	a.Vel.X = 0
	if a.Vel.Y >= 0 {
		a.Vel.Y += 2
	} else {
		a.Vel.Y = -3
	}
	if a.Pos.Y < platformTop {
		a.Pos.Y = platformTop
		a.Vel.Y = 1
	}
	if a.Pos.Y > platformBottom {
		a.Pos.Y = platformBottom
		a.Vel.Y = -3
	}

	// Riders climb with the platform instead of sinking into it.
	if a.Vel.Y < 0 {
		for _, r := range physics.Riders(a, others) {
			r.Vel.Y = min(r.Vel.Y, a.Vel.Y)
		}
	}
}

// platformCollide runs for the platform as a, whether it moved or was hit.
func platformCollide(axis geom.Axis, a, b *physics.Body, inter geom.Rect) physics.Outcome {
	if axis == geom.AxisX {
		a.Vel.X = 0
		if b.RestsOn(a.Name) {
			return physics.FlatOutcome
		}
	}
	below := a.Pos.Y > b.Pos.Y
	if axis == geom.AxisY && below {
		b.Vel.Y -= a.Vel.Y
	}

	res := physics.FlatCollide(axis, b, a, inter)

	if axis == geom.AxisY {
		if below {
			b.AttachTo(a)
		} else {
			b.DetachFrom(a)
			b.Vel.Y = 1
			if a.Vel.Y > 0 {
				a.Vel.Y = -0.1
			}
		}
	}
	return res
}

func newGrass(x, y int) *physics.Body {
	b := physics.NewBody(
		geom.R(0, 0, 2056, 512),
		geom.R(2056*float64(x), 500+1000*float64(y), 2056, 512),
		[]geom.Rect{geom.R(0, 40, 2056, 472)},
	)
	b.Name = fmt.Sprintf("%s-%d-%d", grassPrefix, x, y)
	b.Mass = physics.Infinite
	b.Elasticity = 0
	return b
}

// newCrate drops crate i from above the upper terrace.
func newCrate(i int) *physics.Body {
	b := physics.NewBody(
		geom.R(0, 0, 64, 64),
		geom.R(200*float64(i), -600, 64, 64),
		[]geom.Rect{geom.R(0, 0, 64, 64)},
	)
	b.Name = fmt.Sprintf("%s-%d", cratePrefix, i)
	b.Mass = 1
	b.Elasticity = 1
	b.Friction = 0.9
	b.Collide = crateCollide
	return b
}

func crateCollide(axis geom.Axis, a, b *physics.Body, inter geom.Rect) physics.Outcome {
	if axis == geom.AxisX {
		if a.RestsOn(b.Name) {
			return physics.FlatOutcome
		}
		return physics.ElasticCollide(axis, a, b, inter)
	}
	if a.Pos.Y < b.Pos.Y {
		a.AttachTo(b)
		return physics.FlatCollide(axis, a, b, inter)
	}
	b.AttachTo(a)
	return physics.FlatCollide(axis, b, a, inter)
}

func (g *Game) newSpider(i int) *physics.Body {
	home := 400 * float64(i)
	b := physics.NewBody(
		geom.R(0, 0, 256, 256),
		geom.R(home, 0, 256, 256),
		[]geom.Rect{geom.R(47, 33, 120, 80)},
	)
	b.Name = fmt.Sprintf("%s-%d", spiderPrefix, i)
	b.Mass = 1e6
	b.Elasticity = 1
	b.Vel.X = 20
	b.SetScratch(keyHome, home)
	b.Tick = g.spiderTick
	b.Collide = g.spiderCollide
	return b
}

// spiderTick patrols between the configured distances around the spawn point,
// at a speed that grows with difficulty.
func (g *Game) spiderTick(a *physics.Body, _ physics.Bodies) {
	e := g.cfg.Enemies
	speed := g.patrolSpeed
	if a.Vel.X >= 0 {
		a.Vel.X = speed
		a.Params.FlipX = true
	} else {
		a.Vel.X = -speed
		a.Params.FlipX = false
	}

	home := a.ScratchOr(keyHome, 0)
	switch {
	case a.Pos.X < home-e.PatrolLeft:
		a.Pos.X = home - e.PatrolLeft
		a.Vel.X = speed
	case a.Pos.X > home+e.PatrolRight:
		a.Pos.X = home + e.PatrolRight
		a.Vel.X = -speed
	}
}

// spiderCollide runs for the spider as a. Landing on it fast enough kills it;
// walking into it hurts the penguin.
func (g *Game) spiderCollide(axis geom.Axis, a, b *physics.Body, inter geom.Rect) physics.Outcome {
	if axis == geom.AxisY && b.Vel.Y > g.cfg.Enemies.StompSpeed && !a.Destroy {
		a.Destroy = true
		if b.Name == PlayerName {
			g.stomps++
			g.events = append(g.events, "stomp "+a.Name)
		}
	}

	res := physics.DefaultCollide(axis, a, b, inter)

	if axis == geom.AxisX {
		a.Vel.X *= -1
		if b.Name == PlayerName {
			g.hurt(b)
		}
	}
	return res
}

// hurt takes one health from the penguin unless it is still recovering.
func (g *Game) hurt(player *physics.Body) {
	if player.ScratchOr(keyHurt, 0) > 0 {
		return
	}
	left := player.AddScratch(keyHealth, -1)
	player.SetScratch(keyHurt, float64(g.cfg.Player.HurtCooldown))
	player.Vel.Y = -g.cfg.Player.JumpImpulse / 2
	g.events = append(g.events, fmt.Sprintf("hurt %d", int(left)))
}
