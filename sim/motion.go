package sim

import (
	"math"
	"time"

	"dgusbridge/dgus"
)

// profile is the velocity profile of one move, starting and ending at rest.
type profile struct {
	Distance  float64 // mm
	CruiseVel float64 // mm/s
	Accel     float64 // mm/s^2
	Duration  time.Duration
}

var maxFeedrateParams = [4]dgus.Param{
	dgus.ParamMaxFeedrateX, dgus.ParamMaxFeedrateY, dgus.ParamMaxFeedrateZ, dgus.ParamMaxFeedrateE,
}

// planMove calculates the trapezoidal profile of a move by delta at feed
// mm/s. Per-axis feedrate limits scale the speed down; a move too short
// to reach cruise speed gets a triangle profile.
func (p *Printer) planMove(delta Position, feed float64) profile {
	d := [4]float64{math.Abs(delta.X), math.Abs(delta.Y), math.Abs(delta.Z), math.Abs(delta.E)}

	distance := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	if distance < 0.001 {
		// extruder only
		distance = d[3]
	}
	if distance < 0.001 || feed <= 0 {
		return profile{}
	}

	vel := feed
	for i, axisDist := range d {
		if axisDist == 0 {
			continue
		}
		limit := p.params[maxFeedrateParams[i]]
		if limit > 0 && vel*axisDist/distance > limit {
			vel = limit * distance / axisDist
		}
	}
	floor := p.params[dgus.ParamMinTravelFeedrate]
	if d[3] > 0 {
		floor = p.params[dgus.ParamMinFeedrate]
	}
	if vel < floor {
		vel = floor
	}

	accel := p.params[dgus.ParamAccelPrint]
	switch {
	case d[3] == 0:
		accel = p.params[dgus.ParamAccelTravel]
	case d[0] == 0 && d[1] == 0 && d[2] == 0:
		accel = p.params[dgus.ParamAccelRetract]
	}
	if accel <= 0 {
		accel = p.cfg.DefaultAccel
	}

	var seconds float64
	accelDist := vel * vel / (2 * accel)
	if 2*accelDist >= distance {
		// Triangle profile (can't reach full speed)
		vel = math.Sqrt(accel * distance)
		seconds = 2 * vel / accel
	} else {
		cruiseDist := distance - 2*accelDist
		seconds = 2*vel/accel + cruiseDist/vel
	}

	return profile{
		Distance:  distance,
		CruiseVel: vel,
		Accel:     accel,
		Duration:  time.Duration(seconds * float64(time.Second)),
	}
}

// softLimits clamps a target to the configured travel of the homed
// cartesian axes. Z may go below its minimum by a negative probe offset.
func (p *Printer) softLimits(pos Position) Position {
	clamp := func(v float64, key string, slack float64) float64 {
		axis, ok := p.cfg.Axes[key]
		if !ok || axis.MaxPosition <= 0 {
			return v
		}
		return math.Max(axis.MinPosition+slack, math.Min(axis.MaxPosition, v))
	}
	pos.X = clamp(pos.X, "x", 0)
	pos.Y = clamp(pos.Y, "y", 0)
	pos.Z = clamp(pos.Z, "z", math.Min(0, p.zOffset))
	return pos
}
