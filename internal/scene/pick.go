package scene

// PickRegistry maps pickable target IDs to body names. The registry is
// populated once at startup: each body registers its surface, and bodies
// with an atmosphere register the shell as a second target resolving to
// the same body. Hit-testing resolves through this table rather than by
// comparing object identity.
type PickRegistry struct {
	byTarget map[string]string
}

// NewPickRegistry returns an empty registry.
func NewPickRegistry() *PickRegistry {
	return &PickRegistry{byTarget: make(map[string]string)}
}

// Register maps a target ID to its owning body.
func (r *PickRegistry) Register(targetID, bodyName string) {
	r.byTarget[targetID] = bodyName
}

// Resolve returns the body owning a target, if registered.
func (r *PickRegistry) Resolve(targetID string) (string, bool) {
	name, ok := r.byTarget[targetID]
	return name, ok
}

// Targets returns the number of registered targets.
func (r *PickRegistry) Targets() int {
	return len(r.byTarget)
}

func surfaceTarget(body string) string {
	return body + "/surface"
}

func atmosphereTarget(body string) string {
	return body + "/atmosphere"
}

// SurfaceTarget returns the pick target ID for a body's surface.
func SurfaceTarget(body string) string {
	return surfaceTarget(body)
}

// AtmosphereTarget returns the pick target ID for a body's atmosphere shell.
func AtmosphereTarget(body string) string {
	return atmosphereTarget(body)
}
