package types

type Result_loaders interface {
	Variant() string
	Load(path string) ([]Field, error)
}
