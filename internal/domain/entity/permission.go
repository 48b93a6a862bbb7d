package entity

// Permission es una entrada de la tabla de visibilidad rol×página×funcionalidad.
// Feature vacío representa el acceso a la página completa.
type Permission struct {
	Role    string
	Page    string
	Feature string
	Allowed bool
}
