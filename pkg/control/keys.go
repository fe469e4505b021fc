package control

import (
	"time"
)

// Key is a movement key.
type Key int

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyDown
	KeyUp
	KeyTurnLeft
	KeyTurnRight
	KeyLookUp
	KeyLookDown
	numKeys
)

// Binding maps a key name, as terminals and windowing libraries spell it,
// to a movement key.
type Binding struct {
	Name string
	Key  Key
}

// Bindings lists the default layout: WASD to move, Q/E to descend and
// rise, arrows to turn.
var Bindings = []Binding{
	{"w", KeyForward},
	{"s", KeyBack},
	{"a", KeyLeft},
	{"d", KeyRight},
	{"q", KeyDown},
	{"e", KeyUp},
	{"left", KeyTurnLeft},
	{"right", KeyTurnRight},
	{"up", KeyLookUp},
	{"down", KeyLookDown},
}

// DefaultHold is how long a key counts as held after its last press.
// It covers the gap before terminal key repeat starts.
const DefaultHold = 150 * time.Millisecond

// Keys tracks held movement keys. Terminals usually report only presses and
// auto-repeats, not releases, so a key is considered held until Hold has
// passed since its last press or until it is explicitly released.
type Keys struct {
	Hold time.Duration

	pressed [numKeys]time.Time
}

// NewKeys creates a key tracker.
func NewKeys(hold time.Duration) *Keys {
	return &Keys{Hold: hold}
}

// Press records a press (or auto-repeat) of k at now.
func (ks *Keys) Press(k Key, now time.Time) {
	if k >= 0 && k < numKeys {
		ks.pressed[k] = now
	}
}

// Release marks k as no longer held.
func (ks *Keys) Release(k Key) {
	if k >= 0 && k < numKeys {
		ks.pressed[k] = time.Time{}
	}
}

// Set presses or releases k, for sources that report key state directly.
func (ks *Keys) Set(k Key, down bool, now time.Time) {
	if down {
		ks.Press(k, now)
	} else {
		ks.Release(k)
	}
}

// Held reports whether k is held at now.
func (ks *Keys) Held(k Key, now time.Time) bool {
	if k < 0 || k >= numKeys {
		return false
	}
	t := ks.pressed[k]
	return !t.IsZero() && now.Sub(t) <= ks.Hold
}

// Input converts the held keys into movement intent.
func (ks *Keys) Input(now time.Time) Input {
	axis := func(pos, neg Key) float64 {
		v := 0.0
		if ks.Held(pos, now) {
			v++
		}
		if ks.Held(neg, now) {
			v--
		}
		return v
	}
	return Input{
		Forward: axis(KeyForward, KeyBack),
		Strafe:  axis(KeyRight, KeyLeft),
		Lift:    axis(KeyUp, KeyDown),
		Yaw:     axis(KeyTurnRight, KeyTurnLeft),
		Pitch:   axis(KeyLookUp, KeyLookDown),
	}
}

// Reset releases every key.
func (ks *Keys) Reset() {
	ks.pressed = [numKeys]time.Time{}
}
