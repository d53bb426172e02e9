package dto

// CategoryForm carries the text fields of the category multipart form. Nil
// means the field was not sent.
type CategoryForm struct {
	Name        *string
	Description *string
}
