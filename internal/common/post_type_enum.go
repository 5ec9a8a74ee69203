package common

// PostType represents post format types from the posts table schema
type PostType string

const (
	PostTypeText    PostType = "text"
	PostTypePhoto   PostType = "photo"
	PostTypeDrawing PostType = "drawing"
)

// String returns the string representation
func (pt PostType) String() string {
	return string(pt)
}

// IsValid checks if the post type is valid
func (pt PostType) IsValid() bool {
	return pt == PostTypeText || pt == PostTypePhoto || pt == PostTypeDrawing
}
