package material

// Finishing holds the per-surface lighting coefficients
type Finishing struct {
	Ka    float64 // ambient
	Kd    float64 // diffuse
	Ks    float64 // specular
	Alpha float64 // shininess exponent
	Kr    float64 // reflection
	Kt    float64 // transmission
	IOR   float64 // index of refraction
}

// NewFinishing creates a finishing from the seven coefficients in file order
func NewFinishing(ka, kd, ks, alpha, kr, kt, ior float64) *Finishing {
	return &Finishing{
		Ka:    ka,
		Kd:    kd,
		Ks:    ks,
		Alpha: alpha,
		Kr:    kr,
		Kt:    kt,
		IOR:   ior,
	}
}

// NewMatte creates a finishing with only ambient and diffuse response
func NewMatte(ka, kd float64) *Finishing {
	return &Finishing{Ka: ka, Kd: kd, IOR: 1}
}
