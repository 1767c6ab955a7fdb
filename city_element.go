package roadgeom

// CityElement is the narrow identity surface shared by every model in a
// city: a display name. Embedded by Road and City
type CityElement struct {
	name string
}

// Name returns display name of the element
func (e *CityElement) Name() string {
	return e.name
}

// SetName overrides display name of the element
func (e *CityElement) SetName(name string) {
	e.name = name
}
