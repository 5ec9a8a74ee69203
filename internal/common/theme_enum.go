package common

// Theme represents the selectable UI themes from the users table schema
type Theme string

const (
	ThemeHelloKitty Theme = "hello_kitty"
	ThemePokemon    Theme = "pokemon"
	ThemeNeutral    Theme = "neutral"
)

// String returns the string representation
func (t Theme) String() string {
	return string(t)
}

// IsValid checks if the theme is one of the known values
func (t Theme) IsValid() bool {
	return t == ThemeHelloKitty || t == ThemePokemon || t == ThemeNeutral
}
