package bounce

// Color is an 8-bit RGBA color carried by balls, shapes and color effects.
// The engine only stores and copies it; realizing it on screen is the
// renderer's job.
type Color struct {
	R, G, B, A uint8
}
