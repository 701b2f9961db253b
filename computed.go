package gesture

import "seehuhn.de/go/geom/vec"

// Field is a bit identifying a derived value in a Computed record.
type Field uint16

const (
	FieldDistance   Field = 1 << iota // Distance
	FieldDirection                    // Direction
	FieldVelocity                     // Velocity, VelocityX, VelocityY
	FieldDelta                        // DeltaX, DeltaY
	FieldVector                       // Vector, StartVector, PrevVector, Center
	FieldScale                        // Scale
	FieldDeltaScale                   // DeltaScale
	FieldAngle                        // Angle, DeltaAngle
)

// Computed is the per-frame record built by a recognizer's computations.
// It is rebuilt from scratch for every frame; a field whose bit is not set
// was not produced this frame and its value is meaningless.
type Computed struct {
	Phase       Phase
	PointLength int
	Samples     []Sample

	Distance  float64
	Direction Direction

	// Velocity is the primary contact's speed in units per millisecond.
	Velocity             float64
	VelocityX, VelocityY float64

	DeltaX, DeltaY float64

	// Vector runs from the first to the second contact.
	Vector      vec.Vec2
	StartVector vec.Vec2
	PrevVector  vec.Vec2
	Center      vec.Vec2

	Scale      float64
	DeltaScale float64

	// Angle and DeltaAngle are in degrees, normalised to (-180, 180].
	Angle      float64
	DeltaAngle float64

	fields Field
}

// Has reports whether every field in f was produced this frame.
func (c *Computed) Has(f Field) bool {
	return c.fields&f == f
}

// Set marks f as produced. Computations call it after writing the values.
func (c *Computed) Set(f Field) {
	c.fields |= f
}

// Fields returns the set of produced fields.
func (c *Computed) Fields() Field {
	return c.fields
}
