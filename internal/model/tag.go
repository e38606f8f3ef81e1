package model

// Tag is a reusable label definition. Emotions and confirmations share it.
type Tag struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type (
	Emotion      = Tag
	Confirmation = Tag
)

// TagInput is the client payload for creating a tag.
type TagInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (in TagInput) Fields() map[string]any {
	f := map[string]any{"name": in.Name}
	putString(f, "description", in.Description)
	return f
}

// TagUpdate is a partial tag.
type TagUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (u TagUpdate) Fields() map[string]any {
	f := map[string]any{}
	putString(f, "name", u.Name)
	putString(f, "description", u.Description)
	return f
}
