package physics

import "slices"

// AttachTo makes b rest on target. The reverse link is added once.
func (b *Body) AttachTo(target *Body) {
	b.Attached = target.Name
	if !slices.Contains(target.AttachedFrom, b.Name) {
		target.AttachedFrom = append(target.AttachedFrom, b.Name)
	}
}

// Attach makes b rest on the body called name. The reverse link is only
// recorded when that body is present in others.
func (b *Body) Attach(name string, others Bodies) {
	if target, ok := others[name]; ok {
		b.AttachTo(target)
		return
	}
	b.Attached = name
}

// Detach clears b's attachment and removes b from its former target's riders.
func (b *Body) Detach(others Bodies) {
	if b.Attached == "" {
		return
	}
	if target, ok := others[b.Attached]; ok {
		target.removeRider(b.Name)
	}
	b.Attached = ""
}

// DetachFrom clears b's attachment to target, if it has one, and removes b
// from target's riders.
func (b *Body) DetachFrom(target *Body) {
	if b.Attached == target.Name {
		b.Attached = ""
	}
	target.removeRider(b.Name)
}

func (b *Body) removeRider(name string) {
	b.AttachedFrom = slices.DeleteFunc(b.AttachedFrom, func(n string) bool {
		return n == name
	})
}

// IsAttached reports whether b rests on anything.
func (b *Body) IsAttached() bool {
	return b.Attached != ""
}

// RestsOn reports whether b rests on the body called name.
func (b *Body) RestsOn(name string) bool {
	return b.Attached != "" && b.Attached == name
}

// Riders returns the bodies in others that rest on b, in attachment order.
func Riders(b *Body, others Bodies) []*Body {
	riders := make([]*Body, 0, len(b.AttachedFrom))
	for _, name := range b.AttachedFrom {
		if r, ok := others[name]; ok && r.RestsOn(b.Name) {
			riders = append(riders, r)
		}
	}
	return riders
}
