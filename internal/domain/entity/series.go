package entity

// Series colección/serie de diseños; independiente de Category.
type Series struct {
	Name     string
	IsActive bool
}
